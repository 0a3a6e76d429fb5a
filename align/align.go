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

// Package align hosts the shared plumbing of the registration pipeline:
// the verbosity level that gates diagnostic output and the logger the
// numerical packages write it to.
package align

import (
	"github.com/sirupsen/logrus"
)

// VerbosityLevel selects how much the registration components log.
type VerbosityLevel int

const (
	// VerbosityNone logs nothing.
	VerbosityNone VerbosityLevel = iota
	// VerbosityStatus logs the current status of the algorithm.
	VerbosityStatus
	// VerbosityDiagnose logs per-component progress, enough to spot a
	// failing component (e.g. a non-converging inverter).
	VerbosityDiagnose
	// VerbosityDebug logs as much as possible.
	VerbosityDebug
)

// Verbosity gates all logging in the align packages. The default is
// VerbosityNone; the kernels themselves never log below VerbosityDiagnose.
var Verbosity = VerbosityNone

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.DebugLevel)
	return l
}

// Logger returns the logger shared by the align packages.
func Logger() *logrus.Logger {
	return logger
}

// SetLogger replaces the shared logger. A nil logger resets to the default.
func SetLogger(l *logrus.Logger) {
	if l == nil {
		l = newLogger()
	}
	logger = l
}
