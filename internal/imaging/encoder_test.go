package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func createTestJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func failingFile(name string) File {
	return File{Name: name, Open: func() (io.ReadCloser, error) { return nil, errors.New("disk on fire") }}
}

func TestEncode_CapsAtTenPreservingOrder(t *testing.T) {
	pngData := createTestPNG(t, 4, 4)
	files := make([]File, 15)
	for i := range files {
		files[i] = FromBytes(fmt.Sprintf("img-%02d.png", i), pngData)
	}

	imgs, err := NewEncoder(0).Encode(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, imgs, 10)

	seen := map[string]bool{}
	for i, img := range imgs {
		assert.Equal(t, fmt.Sprintf("img-%02d.png", i), img.Name)
		assert.True(t, strings.HasPrefix(img.Data, "data:image/png;base64,"))
		assert.False(t, seen[img.ID], "duplicate id")
		seen[img.ID] = true
	}
}

func TestEncode_RoundTripsBytes(t *testing.T) {
	pngData := createTestPNG(t, 3, 3)
	imgs, err := NewEncoder(0).Encode(context.Background(), []File{FromBytes("a.png", pngData)})
	require.NoError(t, err)
	require.Len(t, imgs, 1)

	mime, data, err := DecodeDataURI(imgs[0].Data)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, pngData, data)
}

func TestEncode_FailureAbortsWholeBatch(t *testing.T) {
	pngData := createTestPNG(t, 2, 2)
	files := []File{FromBytes("ok1.png", pngData), FromBytes("ok2.png", pngData), failingFile("bad.png")}

	imgs, err := NewEncoder(0).Encode(context.Background(), files)
	assert.Nil(t, imgs)
	require.Error(t, err)
	assert.True(t, IsImageReadFailed(err))
	assert.Contains(t, err.Error(), "bad.png")
}

func TestEncode_RejectsNonImage(t *testing.T) {
	_, err := NewEncoder(0).Encode(context.Background(), []File{FromBytes("notes.txt", []byte("just text"))})
	assert.True(t, IsImageReadFailed(err))

	_, err = NewEncoder(0).Encode(context.Background(), []File{FromBytes("empty.png", nil)})
	assert.True(t, IsImageReadFailed(err))
}

func TestEncode_EmptyInput(t *testing.T) {
	imgs, err := NewEncoder(0).Encode(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, imgs)
}

func TestEncode_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	imgs, err := NewEncoder(0).Encode(ctx, []File{FromBytes("a.png", createTestPNG(t, 1, 1))})
	assert.Nil(t, imgs)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEncode_FromPath(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "photo.jpg")
	require.NoError(t, os.WriteFile(p, createTestJPEG(t, 8, 8), 0o600))

	imgs, err := NewEncoder(0).Encode(context.Background(), []File{FromPath(p)})
	require.NoError(t, err)
	require.Len(t, imgs, 1)
	assert.Equal(t, "photo.jpg", imgs[0].Name)
	assert.True(t, strings.HasPrefix(imgs[0].Data, "data:image/jpeg;base64,"))

	_, err = NewEncoder(0).Encode(context.Background(), []File{FromPath(filepath.Join(dir, "missing.jpg"))})
	assert.True(t, IsImageReadFailed(err))
}

func TestEncode_Downscale(t *testing.T) {
	imgs, err := NewEncoder(64).Encode(context.Background(), []File{FromBytes("big.jpg", createTestJPEG(t, 256, 128))})
	require.NoError(t, err)

	_, data, err := DecodeDataURI(imgs[0].Data)
	require.NoError(t, err)
	img, _, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
}

func TestEncode_SmallImageNotTouched(t *testing.T) {
	src := createTestPNG(t, 10, 10)
	imgs, err := NewEncoder(64).Encode(context.Background(), []File{FromBytes("small.png", src)})
	require.NoError(t, err)

	_, data, err := DecodeDataURI(imgs[0].Data)
	require.NoError(t, err)
	assert.Equal(t, src, data)
}

func TestDecodeDataURI_Malformed(t *testing.T) {
	for _, in := range []string{"", "image/png;base64,AA==", "data:image/png;base64", "data:image/png,AA==", "data:image/png;base64,@@@"} {
		_, _, err := DecodeDataURI(in)
		assert.Error(t, err, in)
	}
}
