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

import "fmt"

// Field3D is a dense slices x rows x cols grid of 3-component displacement
// vectors. Storage is row-major with the vector components innermost: the
// value at lattice point (s, i, j) starts at data[((s*rows+i)*cols+j)*3]
// as (slice offset, row offset, column offset).
type Field3D[T Floats] struct {
	data   []T
	slices int
	rows   int
	cols   int
}

// NewField3D creates a zero field with the given shape. Negative
// dimensions are treated as zero.
func NewField3D[T Floats](slices, rows, cols int) *Field3D[T] {
	if slices < 0 {
		slices = 0
	}
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Field3D[T]{
		data:   make([]T, slices*rows*cols*3),
		slices: slices,
		rows:   rows,
		cols:   cols,
	}
}

// NewField3DFromSlice wraps an existing flat buffer as a field. The buffer
// must hold exactly slices*rows*cols vectors of 3 components. The buffer is
// not copied.
func NewField3DFromSlice[T Floats](slices, rows, cols int, data []T) (*Field3D[T], error) {
	if slices < 0 || rows < 0 || cols < 0 {
		return nil, fmt.Errorf("field3d: invalid shape %dx%dx%d: %w", slices, rows, cols, ErrShapeMismatch)
	}
	if len(data) != slices*rows*cols*3 {
		return nil, fmt.Errorf("field3d: buffer length %d does not match shape %dx%dx%dx3: %w",
			len(data), slices, rows, cols, ErrShapeMismatch)
	}
	return &Field3D[T]{data: data, slices: slices, rows: rows, cols: cols}, nil
}

// Slices returns the number of lattice slices.
func (f *Field3D[T]) Slices() int {
	return f.slices
}

// Rows returns the number of lattice rows.
func (f *Field3D[T]) Rows() int {
	return f.rows
}

// Cols returns the number of lattice columns.
func (f *Field3D[T]) Cols() int {
	return f.cols
}

// NumPoints returns the number of lattice points.
func (f *Field3D[T]) NumPoints() int {
	return f.slices * f.rows * f.cols
}

// Data returns the underlying flat buffer. Mutating it mutates the field.
func (f *Field3D[T]) Data() []T {
	return f.data
}

// Vec returns the displacement vector at lattice point (s, i, j).
func (f *Field3D[T]) Vec(s, i, j int) (ds, dr, dc T) {
	k := ((s*f.rows+i)*f.cols + j) * 3
	return f.data[k], f.data[k+1], f.data[k+2]
}

// SetVec sets the displacement vector at lattice point (s, i, j).
func (f *Field3D[T]) SetVec(s, i, j int, ds, dr, dc T) {
	k := ((s*f.rows+i)*f.cols + j) * 3
	f.data[k] = ds
	f.data[k+1] = dr
	f.data[k+2] = dc
}

// Clone creates a deep copy of the field.
func (f *Field3D[T]) Clone() *Field3D[T] {
	clone := &Field3D[T]{
		data:   make([]T, len(f.data)),
		slices: f.slices,
		rows:   f.rows,
		cols:   f.cols,
	}
	copy(clone.data, f.data)
	return clone
}

// Clear sets every vector to zero.
func (f *Field3D[T]) Clear() {
	for i := range f.data {
		f.data[i] = 0
	}
}

// SameShape reports whether both fields have the same lattice shape.
func (f *Field3D[T]) SameShape(other *Field3D[T]) bool {
	return f.slices == other.slices && f.rows == other.rows && f.cols == other.cols
}

func checkField3D[T Floats](name string, f *Field3D[T]) error {
	if f == nil {
		return fmt.Errorf("vecfield: %s is nil: %w", name, ErrShapeMismatch)
	}
	if len(f.data) != f.slices*f.rows*f.cols*3 {
		return fmt.Errorf("vecfield: %s buffer length %d does not match shape %dx%dx%dx3: %w",
			name, len(f.data), f.slices, f.rows, f.cols, ErrShapeMismatch)
	}
	return nil
}
