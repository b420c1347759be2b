package commands

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"PrizeKeeper/internal/config"
)

// testConfig направляет БД и настройки во временный каталог.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		DBPath:   filepath.Join(dir, "db", "prizes.sqlite"),
		PrefsDir: filepath.Join(dir, "prefs"),
		LogLevel: "warn",
	}
}

// run выполняет команду через Dispatch и возвращает код и вывод.
func run(t *testing.T, cfg *config.Config, args ...string) (int, string) {
	t.Helper()
	var buf bytes.Buffer
	old := Out
	Out = &buf
	defer func() { Out = old }()
	code := Dispatch(context.Background(), cfg, args)
	return code, buf.String()
}

var idLine = regexp.MustCompile(`(?m)^\s+id:\s+(\S+)$`)

func extractID(t *testing.T, out string) string {
	t.Helper()
	m := idLine.FindStringSubmatch(out)
	require.NotNil(t, m, "no id in output: %s", out)
	return m[1]
}

func writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{255, 0, 0, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, buf.Bytes(), 0o600))
	return p
}
