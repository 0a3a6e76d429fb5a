// Copyright 2026 dipy-go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vecfield

import "math"

// ConstantField2D returns a rows x cols field with every vector set to
// (dr, dc).
func ConstantField2D[T Floats](rows, cols int, dr, dc T) *Field2D[T] {
	f := NewField2D[T](rows, cols)
	for k := 0; k < len(f.data); k += 2 {
		f.data[k] = dr
		f.data[k+1] = dc
	}
	return f
}

// ConstantField3D returns a slices x rows x cols field with every vector
// set to (ds, dr, dc).
func ConstantField3D[T Floats](slices, rows, cols int, ds, dr, dc T) *Field3D[T] {
	f := NewField3D[T](slices, rows, cols)
	for k := 0; k < len(f.data); k += 3 {
		f.data[k] = ds
		f.data[k+1] = dr
		f.data[k+2] = dc
	}
	return f
}

// HarmonicField2D returns the smooth synthetic field
//
//	d(r, c) = b * cos(m*theta) * (r - cr, c - cc)
//
// where (cr, cc) is the grid center and theta the polar angle of the point
// about it. Small values of b give an invertible field; it is the standard
// workout for the fixed-point inverter.
func HarmonicField2D[T Floats](rows, cols int, b, m T) *Field2D[T] {
	f := NewField2D[T](rows, cols)
	cr := float64(rows-1) / 2
	cc := float64(cols-1) / 2
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			x0 := float64(i) - cr
			x1 := float64(j) - cc
			theta := math.Atan2(x1, x0)
			scale := float64(b) * math.Cos(float64(m)*theta)
			f.SetVec(i, j, T(x0*scale), T(x1*scale))
		}
	}
	return f
}

// HarmonicField3D returns the 3-D analogue of HarmonicField2D, with the
// angular modulation taken in the row/column plane.
func HarmonicField3D[T Floats](slices, rows, cols int, b, m T) *Field3D[T] {
	f := NewField3D[T](slices, rows, cols)
	cs := float64(slices-1) / 2
	cr := float64(rows-1) / 2
	cc := float64(cols-1) / 2
	for s := 0; s < slices; s++ {
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				x0 := float64(s) - cs
				x1 := float64(i) - cr
				x2 := float64(j) - cc
				theta := math.Atan2(x2, x1)
				scale := float64(b) * math.Cos(float64(m)*theta)
				f.SetVec(s, i, j, T(x0*scale), T(x1*scale), T(x2*scale))
			}
		}
	}
	return f
}
