package commands

import (
	"context"
	"fmt"

	"PrizeKeeper/internal/config"
	"PrizeKeeper/internal/imaging"
)

type showCmd struct{}

func (showCmd) Name() string        { return "show" }
func (showCmd) Description() string { return "Показать приз целиком" }
func (showCmd) Usage() string       { return "show <id>" }

func (showCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
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
	printPrize(Out, p)
	for i, img := range p.Images {
		mime, data, err := imaging.DecodeDataURI(img.Data)
		if err != nil {
			fmt.Fprintf(Out, "    [%d] %s <corrupted: %v>\n", i, img.Name, err)
			continue
		}
		name := img.Name
		if name == "" {
			name = "<unnamed>"
		}
		fmt.Fprintf(Out, "    [%d] %s  %s  %d bytes\n", i, name, mime, len(data))
	}
	return nil
}

func init() { RegisterCmd(showCmd{}) }
