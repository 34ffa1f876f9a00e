package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogLevel(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	SetupLogLevel(true, false)
	assert.Equal(t, logrus.TraceLevel, logrus.GetLevel())
	assert.False(t, IsQuiet())

	SetupLogLevel(false, true)
	assert.Equal(t, logrus.ErrorLevel, logrus.GetLevel())
	assert.True(t, IsQuiet())

	SetupLogLevel(false, false)
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}

func TestSetupFormat(t *testing.T) {
	var buf bytes.Buffer
	prev := logrus.StandardLogger().Out
	SetOutput(&buf)
	defer SetOutput(prev)
	defer SetupFormat(FORMAT_TEXT)

	require.NoError(t, SetupFormat("JSON"))
	Infof("rounded %d values", 3)
	assert.Contains(t, buf.String(), `"msg":"rounded 3 values"`)

	require.NoError(t, SetupFormat(""))
	assert.Error(t, SetupFormat("xml"))
}

func TestGoWithProgress(t *testing.T) {
	var buf bytes.Buffer
	err := GoWithProgress(&buf, "Querying", func(update UpdateFunc) error {
		update(ProgressInfo{Series: 2})
		return nil
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "\rQuerying ("))
	assert.True(t, strings.HasSuffix(buf.String(), "): 2 series... done.\n"))

	failure := errors.New("boom")
	err = GoWithProgress(nil, "Querying", func(update UpdateFunc) error {
		update(ProgressInfo{})
		return failure
	})
	assert.Equal(t, failure, err)
}
