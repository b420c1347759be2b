package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "prizes.log")
	log, cleanup, err := New("info", file)
	require.NoError(t, err)

	log.Infow("prize stored", "id", "abc")
	log.Debugw("not written", "id", "def")
	cleanup()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"prize stored"`)
	assert.Contains(t, string(data), `"id":"abc"`)
	assert.NotContains(t, string(data), "not written")
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, _, err := New("loud", "")
	assert.Error(t, err)
}

func TestNew_ConsoleOnly(t *testing.T) {
	log, cleanup, err := New("error", "")
	require.NoError(t, err)
	require.NotNil(t, log)
	cleanup()
}
