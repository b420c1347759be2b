package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd_List_Show_Scenario(t *testing.T) {
	cfg := testConfig(t)

	code, out := run(t, cfg, "list")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Нет призов")

	code, out = run(t, cfg, "add", "--category", "Figure", "--qty", "3", "Dragon", "Figure")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "Created:")
	assert.Contains(t, out, "name:     Dragon Figure")
	assert.Contains(t, out, "quantity: 3")
	id := extractID(t, out)

	code, out = run(t, cfg, "list")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Dragon Figure")
	assert.Contains(t, out, "Всего: 1")

	code, out = run(t, cfg, "show", id[:8])
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "id:       "+id)
	assert.NotContains(t, out, "note:")
}

func TestAdd_BlankNameCannotSave(t *testing.T) {
	cfg := testConfig(t)
	code, out := run(t, cfg, "add", "   ")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "cannot save")

	_, out = run(t, cfg, "list")
	assert.Contains(t, out, "Нет призов")
}

func TestAdd_UnreadableImageAbortsSave(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	good := writePNG(t, dir, "good.png")

	code, out := run(t, cfg, "add", "--image", good, "--image", filepath.Join(dir, "missing.png"), "Plushie")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "could not read images")

	_, out = run(t, cfg, "list")
	assert.Contains(t, out, "Нет призов")
}

func TestQuantity_Commands(t *testing.T) {
	cfg := testConfig(t)
	_, out := run(t, cfg, "add", "--qty", "3", "Coin")
	id := extractID(t, out)

	code, out := run(t, cfg, "qty", id, "2")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "quantity=2")

	_, out = run(t, cfg, "inc", id, "5")
	assert.Contains(t, out, "quantity=7")

	_, out = run(t, cfg, "dec", id)
	assert.Contains(t, out, "quantity=6")

	_, out = run(t, cfg, "dec", id, "100")
	assert.Contains(t, out, "quantity=0")

	_, out = run(t, cfg, "qty", id, "abc")
	assert.Contains(t, out, "quantity=0")

	code, _ = run(t, cfg, "inc", id, "0")
	assert.Equal(t, 2, code)

	code, out = run(t, cfg, "qty", "no-such-id", "1")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "prize not found")
}

func TestEdit_FieldsAndImages(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png")
	b := writePNG(t, dir, "b.png")

	_, out := run(t, cfg, "add", "--note", "from Akihabara", "--image", a, "Keychain")
	id := extractID(t, out)
	assert.Contains(t, out, "images:   1")

	code, out := run(t, cfg, "edit", "--name", "Rare Keychain", "--category", "Keychain", "--image", b, id)
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "name:     Rare Keychain")
	assert.Contains(t, out, "note:     from Akihabara")
	assert.Contains(t, out, "images:   2")

	_, out = run(t, cfg, "show", id)
	assert.Contains(t, out, "[0] a.png  image/png")
	assert.Contains(t, out, "[1] b.png  image/png")

	_, out = run(t, cfg, "edit", "--note", "", "--remove-image", "0", id)
	assert.NotContains(t, out, "note:")
	assert.Contains(t, out, "images:   1")

	code, out = run(t, cfg, "edit", "--remove-image", "5", id)
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "out of range")

	_, out = run(t, cfg, "edit", "--clear-images", id)
	assert.Contains(t, out, "images:   0")
}

func TestImageExport_RoundTrip(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	src := writePNG(t, dir, "photo.png")

	_, out := run(t, cfg, "add", "--image", src, "Figure")
	id := extractID(t, out)

	dst := filepath.Join(dir, "exported.png")
	code, out := run(t, cfg, "image-export", id, "0", dst)
	require.Equal(t, 0, code, out)

	want, _ := os.ReadFile(src)
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	code, _ = run(t, cfg, "image-export", id, "3", dst)
	assert.Equal(t, 1, code)
}

func TestRm_ThenList(t *testing.T) {
	cfg := testConfig(t)
	_, out := run(t, cfg, "add", "Gone")
	id := extractID(t, out)
	run(t, cfg, "add", "Stays")

	code, out := run(t, cfg, "rm", id)
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "Deleted: Gone")

	_, out = run(t, cfg, "list")
	assert.NotContains(t, out, "Gone")
	assert.Contains(t, out, "Stays")

	code, _ = run(t, cfg, "rm", id)
	assert.Equal(t, 1, code)
}

func TestView_PersistsAndDrivesList(t *testing.T) {
	cfg := testConfig(t)
	run(t, cfg, "add", "--note", "shiny", "Medal")

	_, out := run(t, cfg, "view")
	assert.Contains(t, out, "View: grid")
	_, out = run(t, cfg, "list")
	assert.Contains(t, out, "NAME")

	code, _ := run(t, cfg, "view", "table")
	assert.Equal(t, 2, code)

	code, out = run(t, cfg, "view", "list")
	require.Equal(t, 0, code, out)
	_, out = run(t, cfg, "list")
	assert.NotContains(t, out, "NAME")
	assert.Contains(t, out, "note:     shiny")

	// флаг --view перекрывает сохранённый режим
	_, out = run(t, cfg, "list", "--view", "grid")
	assert.Contains(t, out, "NAME")
}

func TestList_FilterAndCategories(t *testing.T) {
	cfg := testConfig(t)
	run(t, cfg, "add", "--category", "Plush", "--qty", "2", "Pikachu")
	run(t, cfg, "add", "--category", "Figure", "--qty", "1", "--note", "pikachu pose", "Statue")
	run(t, cfg, "add", "--category", "Figure", "--qty", "4", "Dragon")
	run(t, cfg, "add", "--category", "Sticker", "--qty", "1", "Odd")

	_, out := run(t, cfg, "list", "--q", "PIKA")
	assert.Contains(t, out, "Pikachu")
	assert.Contains(t, out, "Statue")
	assert.NotContains(t, out, "Dragon")

	_, out = run(t, cfg, "list", "--category", "Figure")
	assert.Contains(t, out, "Всего: 2")

	_, out = run(t, cfg, "list", "--q", "zzz")
	assert.Contains(t, out, "Ничего не найдено")

	_, out = run(t, cfg, "categories")
	lines := strings.Split(out, "\n")
	assert.Contains(t, lines[0], "CATEGORY")
	assert.Regexp(t, `(?m)^Figure\s+5$`, out)
	assert.Regexp(t, `(?m)^Plush\s+2$`, out)
	assert.Regexp(t, `(?m)^Other\s+0$`, out)
	assert.Regexp(t, `(?m)^Sticker\s+1$`, out)
}

func TestResolveID_AmbiguousPrefix(t *testing.T) {
	cfg := testConfig(t)
	_, out := run(t, cfg, "add", "One")
	a := extractID(t, out)
	_, out = run(t, cfg, "add", "Two")
	b := extractID(t, out)

	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	require.Greater(t, n, 0, "UUIDv7 ids share the timestamp prefix")

	code, out := run(t, cfg, "show", a[:n])
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "ambiguous")

	code, out = run(t, cfg, "show", "zzz")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "prize not found")
}
