package commands

import (
	"context"
	"fmt"
	"strings"

	"PrizeKeeper/internal/config"
	"PrizeKeeper/internal/model"
)

type addCmd struct{}

func (addCmd) Name() string        { return "add" }
func (addCmd) Description() string { return "Добавить приз (до 10 картинок)" }
func (addCmd) Usage() string {
	return "add [--category <c>] [--qty <n>] [--note <text>] [--image <path>]... <name>"
}

func (addCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("add")
	category := fs.String("category", string(model.DefaultCategory), "category")
	qty := fs.String("qty", "0", "quantity")
	note := fs.String("note", "", "free-form note")
	var images stringsFlag
	fs.Var(&images, "image", "image file to attach (repeatable)")
	if err := fs.Parse(args); err != nil || fs.NArg() == 0 {
		return ErrUsage
	}

	// картинки читаем до открытия БД: ошибка чтения не должна ничего менять
	imgs, err := encodeImages(ctx, cfg, images)
	if err != nil {
		return err
	}

	svc, done, err := openService(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()

	p, err := svc.Save(ctx, model.Draft{
		Name:     strings.Join(fs.Args(), " "),
		Category: model.Category(strings.TrimSpace(*category)),
		Quantity: model.ParseQuantity(*qty),
		Note:     *note,
		Images:   model.AppendImages(nil, imgs),
	})
	if err != nil {
		return err
	}
	if !p.Category.Known() {
		fmt.Fprintf(Out, "! unknown category %q stored as is\n", p.Category)
	}
	fmt.Fprintln(Out, "Created:")
	printPrize(Out, p)
	return nil
}

func init() { RegisterCmd(addCmd{}) }
