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

// Compose2D computes the composition comp[p] = d1[p] + d2(p + d1[p]) over
// d1's lattice, evaluating d2 at the continuous target coordinate with
// bilinear interpolation. The result has d1's shape.
//
// A point whose target coordinate falls outside d2's closed domain
// [0, rows-1] x [0, cols-1] produces a zero vector and is excluded from
// the returned statistics. Near the border, corners of the interpolation
// stencil that fall outside d2 contribute nothing and the remaining
// weights are not renormalized; the interpolated magnitude there can be
// smaller than the true value. That boundary approximation is intentional.
//
// If no point lands inside d2's domain the statistics reduction divides by
// a zero count and Mean/Std are non-finite; see Compose2DStrict.
func Compose2D[T Floats](d1, d2 *Field2D[T]) (*Field2D[T], NormStats[T], error) {
	if err := checkField2D("d1", d1); err != nil {
		return nil, NormStats[T]{}, err
	}
	if err := checkField2D("d2", d2); err != nil {
		return nil, NormStats[T]{}, err
	}
	comp := NewField2D[T](d1.rows, d1.cols)
	acc := composeRows2D(d1, d2, comp, 0, d1.rows)
	return comp, acc.stats(), nil
}

// Compose2DStrict is Compose2D, but fails with ErrDegenerateGrid when the
// statistics reduction would divide by a zero point count (empty d1, or no
// target coordinate inside d2's domain).
func Compose2DStrict[T Floats](d1, d2 *Field2D[T]) (*Field2D[T], NormStats[T], error) {
	if err := checkField2D("d1", d1); err != nil {
		return nil, NormStats[T]{}, err
	}
	if err := checkField2D("d2", d2); err != nil {
		return nil, NormStats[T]{}, err
	}
	comp := NewField2D[T](d1.rows, d1.cols)
	acc := composeRows2D(d1, d2, comp, 0, d1.rows)
	if acc.count == 0 {
		return nil, NormStats[T]{}, fmt.Errorf(
			"compose2d: no lattice point of d1 maps into d2's %dx%d domain: %w",
			d2.rows, d2.cols, ErrDegenerateGrid)
	}
	return comp, acc.stats(), nil
}

// composeRows2D runs the composition kernel over d1's rows [r0, r1),
// writing into out (which must have d1's shape) and returning the norm
// reduction for that row range. Shapes are validated by the callers once;
// the loop body indexes the flat buffers directly.
func composeRows2D[T Floats](d1, d2, out *Field2D[T], r0, r1 int) normAccum[T] {
	var acc normAccum[T]
	nr2, nc2 := d2.rows, d2.cols
	maxR, maxC := T(nr2-1), T(nc2-1)
	src := d1.data
	ref := d2.data
	dst := out.data
	refStride := nc2 * 2

	idx := r0 * d1.cols * 2
	for i := r0; i < r1; i++ {
		for j := 0; j < d1.cols; j++ {
			dr := src[idx]
			dc := src[idx+1]
			tr := T(i) + dr
			tc := T(j) + dc

			// Coarse validity: the closed interval on each axis.
			if nr2 == 0 || nc2 == 0 || tr < 0 || tr > maxR || tc < 0 || tc > maxC {
				dst[idx] = 0
				dst[idx+1] = 0
				idx += 2
				continue
			}

			ii := floorInt(tr)
			jj := floorInt(tc)
			// Rounding at the lower bound can put the base corner
			// outside the valid index range.
			if ii < 0 || jj < 0 || ii >= nr2 || jj >= nc2 {
				dst[idx] = 0
				dst[idx+1] = 0
				idx += 2
				continue
			}

			alpha := tr - T(ii)
			beta := tc - T(jj)
			calpha := 1 - alpha
			cbeta := 1 - beta

			base := ii*refStride + jj*2
			w := calpha * cbeta
			ar := w * ref[base]
			ac := w * ref[base+1]
			if jj+1 < nc2 {
				w = calpha * beta
				ar += w * ref[base+2]
				ac += w * ref[base+3]
			}
			if ii+1 < nr2 {
				down := base + refStride
				w = alpha * cbeta
				ar += w * ref[down]
				ac += w * ref[down+1]
				if jj+1 < nc2 {
					w = alpha * beta
					ar += w * ref[down+2]
					ac += w * ref[down+3]
				}
			}

			rr := dr + ar
			cc := dc + ac
			dst[idx] = rr
			dst[idx+1] = cc

			// The stats inclusion test is the same closed-interval
			// test on the continuous target, already satisfied here.
			acc.add(rr*rr + cc*cc)
			idx += 2
		}
	}
	return acc
}
