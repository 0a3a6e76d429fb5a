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
	"github.com/jerryfrancis-97/dipy/internal/workerpool"
)

// Compose2DParallel is the explicitly parallel fast mode of Compose2D,
// splitting d1's rows across the pool. Per-point output values are
// identical to Compose2D; the statistics are reduced per row segment and
// merged in ascending segment order, so they are deterministic for a fixed
// pool size but may differ in the last bits from the serial reduction.
// Callers needing the bit-reproducible contract use Compose2D.
func Compose2DParallel[T Floats](pool *workerpool.Pool, d1, d2 *Field2D[T]) (*Field2D[T], NormStats[T], error) {
	if err := checkField2D("d1", d1); err != nil {
		return nil, NormStats[T]{}, err
	}
	if err := checkField2D("d2", d2); err != nil {
		return nil, NormStats[T]{}, err
	}
	comp := NewField2D[T](d1.rows, d1.cols)

	segs := min(pool.NumWorkers(), d1.rows)
	if segs <= 1 {
		acc := composeRows2D(d1, d2, comp, 0, d1.rows)
		return comp, acc.stats(), nil
	}

	chunk := (d1.rows + segs - 1) / segs
	accs := make([]normAccum[T], segs)
	pool.ParallelFor(segs, func(start, end int) {
		for seg := start; seg < end; seg++ {
			r0 := seg * chunk
			r1 := min(r0+chunk, d1.rows)
			if r0 >= r1 {
				continue
			}
			accs[seg] = composeRows2D(d1, d2, comp, r0, r1)
		}
	})

	var acc normAccum[T]
	for i := range accs {
		acc.merge(accs[i])
	}
	return comp, acc.stats(), nil
}

// Compose3DParallel is the explicitly parallel fast mode of Compose3D,
// splitting d1's slices across the pool. Determinism caveats match
// Compose2DParallel.
func Compose3DParallel[T Floats](pool *workerpool.Pool, d1, d2 *Field3D[T]) (*Field3D[T], NormStats[T], error) {
	if err := checkField3D("d1", d1); err != nil {
		return nil, NormStats[T]{}, err
	}
	if err := checkField3D("d2", d2); err != nil {
		return nil, NormStats[T]{}, err
	}
	comp := NewField3D[T](d1.slices, d1.rows, d1.cols)

	segs := min(pool.NumWorkers(), d1.slices)
	if segs <= 1 {
		acc := composeSlices3D(d1, d2, comp, 0, d1.slices)
		return comp, acc.stats(), nil
	}

	chunk := (d1.slices + segs - 1) / segs
	accs := make([]normAccum[T], segs)
	pool.ParallelFor(segs, func(start, end int) {
		for seg := start; seg < end; seg++ {
			s0 := seg * chunk
			s1 := min(s0+chunk, d1.slices)
			if s0 >= s1 {
				continue
			}
			accs[seg] = composeSlices3D(d1, d2, comp, s0, s1)
		}
	})

	var acc normAccum[T]
	for i := range accs {
		acc.merge(accs[i])
	}
	return comp, acc.stats(), nil
}
