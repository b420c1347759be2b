package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefsFSStore_DefaultWhenMissing(t *testing.T) {
	st := PrefsFSStore{Dir: filepath.Join(t.TempDir(), "prefs")}
	m, err := st.LoadViewMode()
	require.NoError(t, err)
	assert.Equal(t, ViewGrid, m)
}

func TestPrefsFSStore_SaveLoad_TrimsWhitespace(t *testing.T) {
	st := PrefsFSStore{Dir: t.TempDir()}
	require.NoError(t, st.SaveViewMode(ViewList))

	// дозапишем перевод строки, как после ручного редактирования
	p, _ := st.viewModePath()
	f, err := os.OpenFile(p, os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	_, _ = f.WriteString(" \r\n")
	_ = f.Close()

	m, err := st.LoadViewMode()
	require.NoError(t, err)
	assert.Equal(t, ViewList, m)
}

func TestPrefsFSStore_RejectsUnknownMode(t *testing.T) {
	st := PrefsFSStore{Dir: t.TempDir()}
	assert.Error(t, st.SaveViewMode("table"))

	p, _ := st.viewModePath()
	require.NoError(t, os.WriteFile(p, []byte("table"), 0o600))
	m, err := st.LoadViewMode()
	assert.Error(t, err)
	assert.Equal(t, DefaultViewMode, m)
}

func TestPrefsFSStore_EmptyDir(t *testing.T) {
	_, err := PrefsFSStore{}.LoadViewMode()
	assert.Error(t, err)
	assert.Error(t, PrefsFSStore{}.SaveViewMode(ViewGrid))
}

func TestParseViewMode(t *testing.T) {
	m, err := ParseViewMode(" LIST ")
	require.NoError(t, err)
	assert.Equal(t, ViewList, m)
	_, err = ParseViewMode("")
	assert.Error(t, err)
}
