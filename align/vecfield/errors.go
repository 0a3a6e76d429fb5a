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

import "errors"

var (
	// ErrShapeMismatch reports a field whose buffer does not match its
	// declared shape, or operands that disagree on dimensionality.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidIterationBudget reports a negative maxIter passed to an
	// inverter. Zero is valid and runs no iterations.
	ErrInvalidIterationBudget = errors.New("invalid iteration budget")

	// ErrDegenerateGrid reports a grid whose statistics reduction would
	// divide by a zero point count. Only the Strict entry points return
	// it; the default entry points propagate the non-finite statistic.
	ErrDegenerateGrid = errors.New("degenerate grid")
)
