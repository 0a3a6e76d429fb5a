package align

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestVerbosityOrdering(t *testing.T) {
	assert.Less(t, VerbosityNone, VerbosityStatus)
	assert.Less(t, VerbosityStatus, VerbosityDiagnose)
	assert.Less(t, VerbosityDiagnose, VerbosityDebug)
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	defer SetLogger(orig)

	custom := logrus.New()
	SetLogger(custom)
	assert.Same(t, custom, Logger())

	SetLogger(nil)
	assert.NotNil(t, Logger())
	assert.NotSame(t, custom, Logger())
}
