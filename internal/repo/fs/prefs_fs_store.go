package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// ViewMode — режим отображения списка призов в CLI.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// DefaultViewMode is used until the user picks one.
const DefaultViewMode = ViewGrid

// ParseViewMode accepts "grid" or "list" in any case.
func ParseViewMode(s string) (ViewMode, error) {
	switch m := ViewMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ViewGrid, ViewList:
		return m, nil
	default:
		return "", errors.Newf("unknown view mode %q (want grid or list)", s)
	}
}

// PrefsFSStore — файловое хранилище пользовательских настроек CLI.
type PrefsFSStore struct {
	Dir string
}

func (s PrefsFSStore) viewModePath() (string, error) {
	if s.Dir == "" {
		return "", errors.New("empty preferences dir")
	}
	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(s.Dir, "view_mode"), nil
}

// SaveViewMode сохраняет режим отображения в файл.
func (s PrefsFSStore) SaveViewMode(m ViewMode) error {
	if _, err := ParseViewMode(string(m)); err != nil {
		return err
	}
	p, err := s.viewModePath()
	if err != nil {
		return err
	}
	return os.WriteFile(p, []byte(m), 0o600)
}

// LoadViewMode читает режим отображения; при отсутствии файла возвращает DefaultViewMode.
func (s PrefsFSStore) LoadViewMode() (ViewMode, error) {
	p, err := s.viewModePath()
	if err != nil {
		return DefaultViewMode, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultViewMode, nil
	}
	if err != nil {
		return DefaultViewMode, err
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return DefaultViewMode, nil
	}
	m, err := ParseViewMode(string(b))
	if err != nil {
		return DefaultViewMode, errors.Wrap(err, "corrupted view_mode file")
	}
	return m, nil
}
