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

// Package vecfield implements the dense displacement-field kernels at the
// core of diffeomorphic image registration: composition of two fields via
// multilinear interpolation and fixed-point (Picard) inversion.
//
// A displacement field stores, at each lattice point, the offset from that
// point to a corresponding point in another coordinate frame, in lattice
// units. Fields are generic over the scalar precision; every operation keeps
// its internal arithmetic in the input precision, so float32 fields are
// never silently promoted to float64.
//
// Example usage:
//
//	d := vecfield.ConstantField2D[float32](64, 64, 1, 0)
//	inv, stats, err := vecfield.InvertFixedPoint2D(d, 64, 64, 50, 1e-4, nil)
package vecfield

import (
	"fmt"
	"math"
)

// Floats is a constraint for the scalar precisions a field can hold.
type Floats interface {
	~float32 | ~float64
}

// Field2D is a dense rows x cols grid of 2-component displacement vectors.
// Storage is row-major with the vector components innermost, so the value
// at lattice point (i, j) occupies data[(i*cols+j)*2 : (i*cols+j)*2+2] as
// (row offset, column offset).
type Field2D[T Floats] struct {
	data []T
	rows int
	cols int
}

// NewField2D creates a zero field with the given shape. Negative
// dimensions are treated as zero.
func NewField2D[T Floats](rows, cols int) *Field2D[T] {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Field2D[T]{
		data: make([]T, rows*cols*2),
		rows: rows,
		cols: cols,
	}
}

// NewField2DFromSlice wraps an existing flat buffer as a field. The buffer
// must hold exactly rows*cols vectors of 2 components; anything else is a
// shape mismatch (in particular a buffer laid out with a 3-component
// trailing axis). The buffer is not copied.
func NewField2DFromSlice[T Floats](rows, cols int, data []T) (*Field2D[T], error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("field2d: invalid shape %dx%d: %w", rows, cols, ErrShapeMismatch)
	}
	if len(data) != rows*cols*2 {
		return nil, fmt.Errorf("field2d: buffer length %d does not match shape %dx%dx2: %w",
			len(data), rows, cols, ErrShapeMismatch)
	}
	return &Field2D[T]{data: data, rows: rows, cols: cols}, nil
}

// Rows returns the number of lattice rows.
func (f *Field2D[T]) Rows() int {
	return f.rows
}

// Cols returns the number of lattice columns.
func (f *Field2D[T]) Cols() int {
	return f.cols
}

// NumPoints returns the number of lattice points.
func (f *Field2D[T]) NumPoints() int {
	return f.rows * f.cols
}

// Data returns the underlying flat buffer. Mutating it mutates the field.
func (f *Field2D[T]) Data() []T {
	return f.data
}

// Vec returns the displacement vector at lattice point (i, j).
func (f *Field2D[T]) Vec(i, j int) (dr, dc T) {
	k := (i*f.cols + j) * 2
	return f.data[k], f.data[k+1]
}

// SetVec sets the displacement vector at lattice point (i, j).
func (f *Field2D[T]) SetVec(i, j int, dr, dc T) {
	k := (i*f.cols + j) * 2
	f.data[k] = dr
	f.data[k+1] = dc
}

// Clone creates a deep copy of the field.
func (f *Field2D[T]) Clone() *Field2D[T] {
	clone := &Field2D[T]{
		data: make([]T, len(f.data)),
		rows: f.rows,
		cols: f.cols,
	}
	copy(clone.data, f.data)
	return clone
}

// Clear sets every vector to zero.
func (f *Field2D[T]) Clear() {
	for i := range f.data {
		f.data[i] = 0
	}
}

// SameShape reports whether both fields have the same lattice shape.
func (f *Field2D[T]) SameShape(other *Field2D[T]) bool {
	return f.rows == other.rows && f.cols == other.cols
}

// checkField2D validates the internal length invariant once, at the call
// boundary, so the kernels can index the flat buffer unchecked.
func checkField2D[T Floats](name string, f *Field2D[T]) error {
	if f == nil {
		return fmt.Errorf("vecfield: %s is nil: %w", name, ErrShapeMismatch)
	}
	if len(f.data) != f.rows*f.cols*2 {
		return fmt.Errorf("vecfield: %s buffer length %d does not match shape %dx%dx2: %w",
			name, len(f.data), f.rows, f.cols, ErrShapeMismatch)
	}
	return nil
}

// sqrtT is the precision-preserving square root used by the kernels. The
// round trip through float64 is exact: sqrt is correctly rounded, so the
// result equals the correctly rounded square root in T.
func sqrtT[T Floats](x T) T {
	return T(math.Sqrt(float64(x)))
}

// floorInt returns floor(x) as a lattice index.
func floorInt[T Floats](x T) int {
	return int(math.Floor(float64(x)))
}
