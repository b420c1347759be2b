package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gabriel-vasile/mimetype"

	"PrizeKeeper/internal/model"
)

// MaxFiles is the number of files processed per Encode call; the rest are dropped.
const MaxFiles = model.MaxImages

// ErrImageReadFailed marks a file that could not be turned into a data URI.
var ErrImageReadFailed = errors.New("image read failed")

// IsImageReadFailed reports whether err came from reading or encoding an image.
func IsImageReadFailed(err error) bool {
	return errors.Is(err, ErrImageReadFailed)
}

// File is a user-selected image: a display name and a way to read its bytes.
type File struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// FromPath returns a File reading from disk. The file is opened lazily.
func FromPath(path string) File {
	return File{
		Name: filepath.Base(path),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// FromBytes returns a File over an in-memory payload.
func FromBytes(name string, data []byte) File {
	return File{
		Name: name,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
	}
}

// Encoder converts files into inline PrizeImage entries.
type Encoder struct {
	// MaxDimension > 0 downscales larger images; 0 keeps original bytes.
	MaxDimension int
	newID        func() string
}

// NewEncoder creates an encoder. maxDimension == 0 disables downscaling.
func NewEncoder(maxDimension int) *Encoder {
	if maxDimension < 0 {
		maxDimension = 0
	}
	return &Encoder{MaxDimension: maxDimension, newID: model.NewID}
}

// Encode reads at most MaxFiles files one by one, in order, and returns an
// image entry per file with a fresh id. Any failure aborts the whole batch:
// nothing from this call is returned.
func (e *Encoder) Encode(ctx context.Context, files []File) ([]model.PrizeImage, error) {
	if len(files) > MaxFiles {
		files = files[:MaxFiles]
	}
	out := make([]model.PrizeImage, 0, len(files))
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		uri, err := e.encodeOne(f)
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "image %d (%s)", i+1, f.Name), ErrImageReadFailed)
		}
		out = append(out, model.PrizeImage{ID: e.newID(), Data: uri, Name: f.Name})
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func (e *Encoder) encodeOne(f File) (string, error) {
	if f.Open == nil {
		return "", errors.New("no content")
	}
	rc, err := f.Open()
	if err != nil {
		return "", errors.Wrap(err, "opening file")
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", errors.Wrap(err, "reading file")
	}
	if len(data) == 0 {
		return "", errors.New("empty file")
	}

	// не доверяем расширению файла: тип определяется по содержимому
	mime := mimetype.Detect(data).String()
	if !strings.HasPrefix(mime, "image/") {
		return "", errors.Newf("unsupported content type %s", mime)
	}

	if e.MaxDimension > 0 {
		data, mime, err = downscale(data, mime, e.MaxDimension)
		if err != nil {
			return "", err
		}
	}
	return DataURI(mime, data), nil
}

// DataURI builds a base64 data URI.
func DataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI splits a base64 data URI into its media type and payload.
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, errors.New("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errors.New("data URI has no payload")
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, errors.New("data URI is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, errors.Wrap(err, "decoding data URI")
	}
	return mime, data, nil
}
