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

// epsInvert2D is the damping factor of the 2-D Picard update.
const epsInvert2D = 0.25

// InvertFixedPoint2D solves for the field p over the rows x cols target
// lattice such that p(x) ~ -d(x + p(x)), by damped Picard iteration with
// the composition kernel as the inner step: each pass computes
// c = Compose2D(p, d) and updates p(x) -= 0.25*c(x).
//
// start, when non-nil, seeds the iteration and must have the target shape;
// it is copied, never mutated. The loop runs while iterations < maxIter
// and the error magnitude exceeds tol; failing to reach tol is not an
// error, it is reported through the returned InvertStats. The returned
// Residual is the mean result norm of the final inner composition.
//
// A target shape with a zero-length axis propagates a non-finite error
// magnitude; see InvertFixedPoint2DStrict.
func InvertFixedPoint2D[T Floats](d *Field2D[T], rows, cols int, maxIter int, tol T, start *Field2D[T]) (*Field2D[T], InvertStats[T], error) {
	if maxIter < 0 {
		return nil, InvertStats[T]{}, fmt.Errorf("invert2d: maxIter %d: %w", maxIter, ErrInvalidIterationBudget)
	}
	if err := checkField2D("d", d); err != nil {
		return nil, InvertStats[T]{}, err
	}
	if start != nil {
		if err := checkField2D("start", start); err != nil {
			return nil, InvertStats[T]{}, err
		}
		if start.rows != rows || start.cols != cols {
			return nil, InvertStats[T]{}, fmt.Errorf("invert2d: start is %dx%d, target shape is %dx%d: %w",
				start.rows, start.cols, rows, cols, ErrShapeMismatch)
		}
	}

	var p *Field2D[T]
	if start != nil {
		p = start.Clone()
	} else {
		p = NewField2D[T](rows, cols)
	}
	q := NewField2D[T](p.rows, p.cols)
	n := T(p.rows * p.cols)

	iter := 0
	errMag := 1 + tol
	var subAcc normAccum[T]
	var difmag T

	for iter < maxIter && errMag > tol {
		p, q = q, p
		// p now holds c = q o d; the update below overwrites it in place.
		subAcc = composeRows2D(q, d, p, 0, p.rows)

		var sum T
		difmag = 0
		dst := p.data
		prev := q.data
		for k := 0; k < len(dst); k += 2 {
			cr := dst[k]
			cc := dst[k+1]
			mag := sqrtT(cr*cr + cc*cc)
			if mag > difmag {
				difmag = mag
			}
			sum += mag
			dst[k] = prev[k] - T(epsInvert2D)*cr
			dst[k+1] = prev[k+1] - T(epsInvert2D)*cc
		}
		errMag = sum / n
		iter++

		if align.Verbosity >= align.VerbosityDiagnose {
			align.Logger().WithFields(logrus.Fields{
				"iter":   iter,
				"error":  float64(errMag),
				"difmag": float64(difmag),
			}).Debug("invert2d: fixed-point pass")
		}
	}

	stats := InvertStats[T]{Residual: errMag, MaxCorrection: difmag, Iterations: iter}
	if iter > 0 {
		stats.Residual = subAcc.stats().Mean
	}
	return p, stats, nil
}

// InvertFixedPoint2DStrict is InvertFixedPoint2D, but fails with
// ErrDegenerateGrid when the target shape has a zero-length axis.
func InvertFixedPoint2DStrict[T Floats](d *Field2D[T], rows, cols int, maxIter int, tol T, start *Field2D[T]) (*Field2D[T], InvertStats[T], error) {
	if rows <= 0 || cols <= 0 {
		return nil, InvertStats[T]{}, fmt.Errorf("invert2d: target shape %dx%d: %w", rows, cols, ErrDegenerateGrid)
	}
	return InvertFixedPoint2D(d, rows, cols, maxIter, tol, start)
}
