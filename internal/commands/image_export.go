package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"

	"PrizeKeeper/internal/config"
	"PrizeKeeper/internal/imaging"
)

type imageExportCmd struct{}

func (imageExportCmd) Name() string        { return "image-export" }
func (imageExportCmd) Description() string { return "Сохранить картинку приза в файл" }
func (imageExportCmd) Usage() string       { return "image-export <id> <index> <path>" }

func (imageExportCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 3 {
		return ErrUsage
	}
	idx, err := strconv.Atoi(args[1])
	if err != nil {
		return ErrUsage
	}
	svc, done, err := openService(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()

	p, err := resolveID(svc, args[0])
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(p.Images) {
		return errors.Newf("image index %d out of range (have %d)", idx, len(p.Images))
	}
	mime, data, err := imaging.DecodeDataURI(p.Images[idx].Data)
	if err != nil {
		return errors.Wrap(err, "decode stored image")
	}
	if err := os.WriteFile(args[2], data, 0o600); err != nil {
		return errors.Wrap(err, "write image")
	}
	fmt.Fprintf(Out, "Saved %s (%s, %d bytes)\n", args[2], mime, len(data))
	return nil
}

func init() { RegisterCmd(imageExportCmd{}) }
