package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureAll(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetWriterForAll(&buf)
	SetColor(false)
	t.Cleanup(func() {
		SetWriterForAll(os.Stdout)
		SetWriter(WARN, os.Stderr)
		SetWriter(ERROR, os.Stderr)
		SetWriter(FATAL, os.Stderr)
		SetVerbose(false)
		SetColor(os.Getenv("NO_COLOR") == "")
	})
	return &buf
}

func TestDebugOnlyWhenVerbose(t *testing.T) {
	buf := captureAll(t)

	SetVerbose(false)
	Debug("hidden %d", 1)
	assert.Empty(t, buf.String())

	SetVerbose(true)
	Debug("shown %d", 2)
	assert.Contains(t, buf.String(), "DEBUG shown 2")
}

func TestPlainFormatHasNoEscapes(t *testing.T) {
	buf := captureAll(t)

	Warn("skipped %s", "broken.svg")
	line := buf.String()
	assert.Contains(t, line, "WARN  skipped broken.svg")
	assert.NotContains(t, line, "\033[")
}

func TestPlainWriterStripsColour(t *testing.T) {
	var buf bytes.Buffer
	pw := NewPlainWriter(&buf)

	n, err := pw.Write([]byte(ColorRed + "boom" + ColorReset))
	require.NoError(t, err)
	assert.Equal(t, len(ColorRed+"boom"+ColorReset), n)
	assert.Equal(t, "boom", buf.String())
}

func TestAddWriterTees(t *testing.T) {
	first := captureAll(t)
	var second bytes.Buffer
	AddWriter(INFO, &second)

	Info("hello")
	assert.True(t, strings.Contains(first.String(), "hello"))
	assert.True(t, strings.Contains(second.String(), "hello"))
}
