package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"PrizeKeeper/internal/bootstrap"
	"PrizeKeeper/internal/config"
	"PrizeKeeper/internal/imaging"
	"PrizeKeeper/internal/model"
	"PrizeKeeper/internal/service"
)

// ErrNotFound: no prize matches the given id or prefix.
var ErrNotFound = errors.New("prize not found")

// openService открывает синхронизатор с уже загруженным снапшотом.
func openService(ctx context.Context, cfg *config.Config) (service.PrizeService, func() error, error) {
	return bootstrap.OpenSynchronizer(ctx, cfg, log)
}

// newFlagSet создаёт FlagSet команды без вывода в stderr.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// resolveID находит запись по полному id или по однозначному префиксу.
func resolveID(svc service.PrizeService, arg string) (model.Prize, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return model.Prize{}, ErrUsage
	}
	if p, ok := svc.Get(arg); ok {
		return p, nil
	}
	var found []model.Prize
	for _, p := range svc.Snapshot() {
		if strings.HasPrefix(p.ID, arg) {
			found = append(found, p)
		}
	}
	switch len(found) {
	case 0:
		return model.Prize{}, errors.Wrapf(ErrNotFound, "%s", arg)
	case 1:
		return found[0], nil
	default:
		return model.Prize{}, errors.Newf("id prefix %q is ambiguous (%d matches)", arg, len(found))
	}
}

func formatTime(ms int64) string {
	return time.UnixMilli(ms).Local().Format("2006-01-02 15:04")
}

// shortID — первые 8 символов id для табличного вывода.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// stringsFlag собирает повторяющийся флаг (--image a.png --image b.png).
type stringsFlag []string

func (s *stringsFlag) String() string { return strings.Join(*s, ",") }

func (s *stringsFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// encodeImages читает файлы по путям; любая ошибка отменяет весь набор.
func encodeImages(ctx context.Context, cfg *config.Config, paths []string) ([]model.PrizeImage, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	if len(paths) > imaging.MaxFiles {
		fmt.Fprintf(Out, "! only the first %d images are used\n", imaging.MaxFiles)
	}
	files := make([]imaging.File, 0, len(paths))
	for _, p := range paths {
		files = append(files, imaging.FromPath(p))
	}
	return imaging.NewEncoder(cfg.ImageMaxDimension).Encode(ctx, files)
}

// printPrize выводит карточку записи.
func printPrize(w io.Writer, p model.Prize) {
	fmt.Fprintf(w, "  id:       %s\n", p.ID)
	fmt.Fprintf(w, "  name:     %s\n", p.Name)
	fmt.Fprintf(w, "  category: %s\n", p.Category)
	fmt.Fprintf(w, "  quantity: %d\n", p.Quantity)
	if p.Note != nil {
		fmt.Fprintf(w, "  note:     %s\n", *p.Note)
	}
	fmt.Fprintf(w, "  images:   %d\n", len(p.Images))
	fmt.Fprintf(w, "  created:  %s\n", formatTime(p.CreatedAt))
	fmt.Fprintf(w, "  updated:  %s\n", formatTime(p.UpdatedAt))
}
