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

// NormStats summarizes the per-point result-vector norms of a composition,
// computed over the points whose target coordinate fell inside the second
// field's domain. Mean is the root mean of the squared norms and Std the
// population standard deviation of the squared norms, matching the
// reference statistics of the registration pipeline.
type NormStats[T Floats] struct {
	Max  T
	Mean T
	Std  T
}

// InvertStats reports the terminal state of a fixed-point inversion.
//
// Residual is the error magnitude of the final pass. The 2-D inverter
// reports the mean result norm of its last inner composition; the 3-D
// inverter reports the mean magnitude of its last damped update. The two
// quantities are deliberately kept distinct per dimensionality so that
// convergence detection matches the historical behavior of each variant.
//
// MaxCorrection is the largest per-point correction magnitude of the final
// pass, useful for adaptive stopping schemes.
type InvertStats[T Floats] struct {
	Residual      T
	MaxCorrection T
	Iterations    int
}

// normAccum is the running reduction over squared result norms. All
// accumulation happens in T, in a single row-major pass, so results are
// bit-reproducible for a given precision.
type normAccum[T Floats] struct {
	maxSq T
	sum   T
	sumSq T
	count int
}

func (a *normAccum[T]) add(nsq T) {
	if nsq > a.maxSq {
		a.maxSq = nsq
	}
	a.sum += nsq
	a.sumSq += nsq * nsq
	a.count++
}

// merge folds another accumulator into a. Used by the parallel fast mode,
// which merges segment accumulators in ascending segment order.
func (a *normAccum[T]) merge(b normAccum[T]) {
	if b.maxSq > a.maxSq {
		a.maxSq = b.maxSq
	}
	a.sum += b.sum
	a.sumSq += b.sumSq
	a.count += b.count
}

// stats finalizes the reduction. A zero count divides by zero and yields
// non-finite Mean/Std; callers wanting an error instead use the Strict
// entry points.
func (a *normAccum[T]) stats() NormStats[T] {
	mean := a.sum / T(a.count)
	return NormStats[T]{
		Max:  sqrtT(a.maxSq),
		Mean: sqrtT(mean),
		Std:  sqrtT(a.sumSq/T(a.count) - mean*mean),
	}
}
