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

// Compose3D computes the composition comp[p] = d1[p] + d2(p + d1[p]) over
// d1's lattice, evaluating d2 at the continuous target coordinate with
// trilinear interpolation. The result has d1's shape.
//
// Domain, border, and statistics semantics match Compose2D, with the
// 8-corner stencil in place of the 4-corner one.
func Compose3D[T Floats](d1, d2 *Field3D[T]) (*Field3D[T], NormStats[T], error) {
	if err := checkField3D("d1", d1); err != nil {
		return nil, NormStats[T]{}, err
	}
	if err := checkField3D("d2", d2); err != nil {
		return nil, NormStats[T]{}, err
	}
	comp := NewField3D[T](d1.slices, d1.rows, d1.cols)
	acc := composeSlices3D(d1, d2, comp, 0, d1.slices)
	return comp, acc.stats(), nil
}

// Compose3DStrict is Compose3D, but fails with ErrDegenerateGrid when the
// statistics reduction would divide by a zero point count.
func Compose3DStrict[T Floats](d1, d2 *Field3D[T]) (*Field3D[T], NormStats[T], error) {
	if err := checkField3D("d1", d1); err != nil {
		return nil, NormStats[T]{}, err
	}
	if err := checkField3D("d2", d2); err != nil {
		return nil, NormStats[T]{}, err
	}
	comp := NewField3D[T](d1.slices, d1.rows, d1.cols)
	acc := composeSlices3D(d1, d2, comp, 0, d1.slices)
	if acc.count == 0 {
		return nil, NormStats[T]{}, fmt.Errorf(
			"compose3d: no lattice point of d1 maps into d2's %dx%dx%d domain: %w",
			d2.slices, d2.rows, d2.cols, ErrDegenerateGrid)
	}
	return comp, acc.stats(), nil
}

// composeSlices3D runs the composition kernel over d1's slices [s0, s1),
// writing into out (which must have d1's shape) and returning the norm
// reduction for that slice range. The corner case analysis keeps a fixed
// accumulation order: (0,0,0), (0,0,1), (0,1,0), (0,1,1), (1,0,0),
// (1,0,1), (1,1,0), (1,1,1) in (slice, row, col) offsets.
func composeSlices3D[T Floats](d1, d2, out *Field3D[T], s0, s1 int) normAccum[T] {
	var acc normAccum[T]
	ns2, nr2, nc2 := d2.slices, d2.rows, d2.cols
	maxS, maxR, maxC := T(ns2-1), T(nr2-1), T(nc2-1)
	src := d1.data
	ref := d2.data
	dst := out.data
	rowStride := nc2 * 3
	sliceStride := nr2 * rowStride

	idx := s0 * d1.rows * d1.cols * 3
	for s := s0; s < s1; s++ {
		for i := 0; i < d1.rows; i++ {
			for j := 0; j < d1.cols; j++ {
				ds := src[idx]
				dr := src[idx+1]
				dc := src[idx+2]
				ts := T(s) + ds
				tr := T(i) + dr
				tc := T(j) + dc

				if ns2 == 0 || nr2 == 0 || nc2 == 0 ||
					ts < 0 || ts > maxS || tr < 0 || tr > maxR || tc < 0 || tc > maxC {
					dst[idx] = 0
					dst[idx+1] = 0
					dst[idx+2] = 0
					idx += 3
					continue
				}

				ss := floorInt(ts)
				ii := floorInt(tr)
				jj := floorInt(tc)
				if ss < 0 || ii < 0 || jj < 0 || ss >= ns2 || ii >= nr2 || jj >= nc2 {
					dst[idx] = 0
					dst[idx+1] = 0
					dst[idx+2] = 0
					idx += 3
					continue
				}

				alpha := ts - T(ss)
				beta := tr - T(ii)
				gamma := tc - T(jj)
				calpha := 1 - alpha
				cbeta := 1 - beta
				cgamma := 1 - gamma

				base := ss*sliceStride + ii*rowStride + jj*3
				w := calpha * cbeta * cgamma
				as := w * ref[base]
				ar := w * ref[base+1]
				ac := w * ref[base+2]
				if jj+1 < nc2 {
					w = calpha * cbeta * gamma
					as += w * ref[base+3]
					ar += w * ref[base+4]
					ac += w * ref[base+5]
				}
				if ii+1 < nr2 {
					down := base + rowStride
					w = calpha * beta * cgamma
					as += w * ref[down]
					ar += w * ref[down+1]
					ac += w * ref[down+2]
					if jj+1 < nc2 {
						w = calpha * beta * gamma
						as += w * ref[down+3]
						ar += w * ref[down+4]
						ac += w * ref[down+5]
					}
				}
				if ss+1 < ns2 {
					deep := base + sliceStride
					w = alpha * cbeta * cgamma
					as += w * ref[deep]
					ar += w * ref[deep+1]
					ac += w * ref[deep+2]
					if jj+1 < nc2 {
						w = alpha * cbeta * gamma
						as += w * ref[deep+3]
						ar += w * ref[deep+4]
						ac += w * ref[deep+5]
					}
					if ii+1 < nr2 {
						deepDown := deep + rowStride
						w = alpha * beta * cgamma
						as += w * ref[deepDown]
						ar += w * ref[deepDown+1]
						ac += w * ref[deepDown+2]
						if jj+1 < nc2 {
							w = alpha * beta * gamma
							as += w * ref[deepDown+3]
							ar += w * ref[deepDown+4]
							ac += w * ref[deepDown+5]
						}
					}
				}

				vs := ds + as
				vr := dr + ar
				vc := dc + ac
				dst[idx] = vs
				dst[idx+1] = vr
				dst[idx+2] = vc

				acc.add(vs*vs + vr*vr + vc*vc)
				idx += 3
			}
		}
	}
	return acc
}
