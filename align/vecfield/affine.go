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

import "gonum.org/v1/gonum/mat"

// ApplyAffine2D maps the point (row, col) through the homogeneous 3x3
// transform m. A nil transform is the identity. These helpers serve the
// surrounding registration pipeline; the composition and inversion kernels
// never call them and take only pre-computed displacement fields.
func ApplyAffine2D[T Floats](m mat.Matrix, row, col T) (T, T) {
	if m == nil {
		return row, col
	}
	r := float64(row)
	c := float64(col)
	outR := m.At(0, 0)*r + m.At(0, 1)*c + m.At(0, 2)
	outC := m.At(1, 0)*r + m.At(1, 1)*c + m.At(1, 2)
	return T(outR), T(outC)
}

// ApplyAffine3D maps the point (slice, row, col) through the homogeneous
// 4x4 transform m. A nil transform is the identity.
func ApplyAffine3D[T Floats](m mat.Matrix, slice, row, col T) (T, T, T) {
	if m == nil {
		return slice, row, col
	}
	s := float64(slice)
	r := float64(row)
	c := float64(col)
	outS := m.At(0, 0)*s + m.At(0, 1)*r + m.At(0, 2)*c + m.At(0, 3)
	outR := m.At(1, 0)*s + m.At(1, 1)*r + m.At(1, 2)*c + m.At(1, 3)
	outC := m.At(2, 0)*s + m.At(2, 1)*r + m.At(2, 2)*c + m.At(2, 3)
	return T(outS), T(outR), T(outC)
}
