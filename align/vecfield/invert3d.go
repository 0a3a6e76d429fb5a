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

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jerryfrancis-97/dipy/align"
)

// epsInvert3D is the damping factor of the 3-D Picard update.
const epsInvert3D = 0.5

// InvertFixedPoint3D solves for the field p over the slices x rows x cols
// target lattice such that p(x) ~ -d(x + p(x)), by damped Picard iteration
// with Compose3D as the inner step and p(x) -= 0.5*c(x) as the update.
//
// Semantics match InvertFixedPoint2D except for the damping factor and the
// returned Residual, which here is the mean magnitude of the final damped
// update rather than the inner composition's mean norm. The discrepancy is
// kept on purpose; see InvertStats.
func InvertFixedPoint3D[T Floats](d *Field3D[T], slices, rows, cols int, maxIter int, tol T, start *Field3D[T]) (*Field3D[T], InvertStats[T], error) {
	if maxIter < 0 {
		return nil, InvertStats[T]{}, fmt.Errorf("invert3d: maxIter %d: %w", maxIter, ErrInvalidIterationBudget)
	}
	if err := checkField3D("d", d); err != nil {
		return nil, InvertStats[T]{}, err
	}
	if start != nil {
		if err := checkField3D("start", start); err != nil {
			return nil, InvertStats[T]{}, err
		}
		if start.slices != slices || start.rows != rows || start.cols != cols {
			return nil, InvertStats[T]{}, fmt.Errorf("invert3d: start is %dx%dx%d, target shape is %dx%dx%d: %w",
				start.slices, start.rows, start.cols, slices, rows, cols, ErrShapeMismatch)
		}
	}

	var p *Field3D[T]
	if start != nil {
		p = start.Clone()
	} else {
		p = NewField3D[T](slices, rows, cols)
	}
	q := NewField3D[T](p.slices, p.rows, p.cols)
	n := T(p.slices * p.rows * p.cols)

	iter := 0
	errMag := 1 + tol
	var difmag T

	for iter < maxIter && errMag > tol {
		p, q = q, p
		composeSlices3D(q, d, p, 0, p.slices)

		var sum T
		difmag = 0
		dst := p.data
		prev := q.data
		for k := 0; k < len(dst); k += 3 {
			cs := dst[k]
			cr := dst[k+1]
			cc := dst[k+2]
			mag := sqrtT(cs*cs + cr*cr + cc*cc)
			if mag > difmag {
				difmag = mag
			}
			sum += mag
			dst[k] = prev[k] - T(epsInvert3D)*cs
			dst[k+1] = prev[k+1] - T(epsInvert3D)*cr
			dst[k+2] = prev[k+2] - T(epsInvert3D)*cc
		}
		errMag = sum / n
		iter++

		if align.Verbosity >= align.VerbosityDiagnose {
			align.Logger().WithFields(logrus.Fields{
				"iter":   iter,
				"error":  float64(errMag),
				"difmag": float64(difmag),
			}).Debug("invert3d: fixed-point pass")
		}
	}

	stats := InvertStats[T]{Residual: errMag, MaxCorrection: difmag, Iterations: iter}
	return p, stats, nil
}

// InvertFixedPoint3DStrict is InvertFixedPoint3D, but fails with
// ErrDegenerateGrid when the target shape has a zero-length axis.
func InvertFixedPoint3DStrict[T Floats](d *Field3D[T], slices, rows, cols int, maxIter int, tol T, start *Field3D[T]) (*Field3D[T], InvertStats[T], error) {
	if slices <= 0 || rows <= 0 || cols <= 0 {
		return nil, InvertStats[T]{}, fmt.Errorf("invert3d: target shape %dx%dx%d: %w", slices, rows, cols, ErrDegenerateGrid)
	}
	return InvertFixedPoint3D(d, slices, rows, cols, maxIter, tol, start)
}
