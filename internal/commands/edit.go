package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"PrizeKeeper/internal/config"
	"PrizeKeeper/internal/model"
)

type editCmd struct{}

func (editCmd) Name() string        { return "edit" }
func (editCmd) Description() string { return "Изменить поля приза; новые картинки добавляются к существующим" }
func (editCmd) Usage() string {
	return "edit [--name <s>] [--category <c>] [--qty <n>] [--note <text>] [--image <path>]... [--remove-image <i>] [--clear-images] <id>"
}

func (editCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("edit")
	name := fs.String("name", "", "new name")
	category := fs.String("category", "", "new category")
	qty := fs.String("qty", "", "new quantity")
	note := fs.String("note", "", "new note (empty string removes it)")
	removeImage := fs.Int("remove-image", -1, "index of image to remove")
	clearImages := fs.Bool("clear-images", false, "remove all images")
	var images stringsFlag
	fs.Var(&images, "image", "image file to attach (repeatable)")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return ErrUsage
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	imgs, err := encodeImages(ctx, cfg, images)
	if err != nil {
		return err
	}

	svc, done, err := openService(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()

	cur, err := resolveID(svc, fs.Arg(0))
	if err != nil {
		return err
	}
	d := model.DraftOf(cur)
	if set["name"] {
		d.Name = *name
	}
	if set["category"] {
		d.Category = model.Category(strings.TrimSpace(*category))
	}
	if set["qty"] {
		d.Quantity = model.ParseQuantity(*qty)
	}
	if set["note"] {
		d.Note = *note
	}
	if *clearImages {
		d.Images = nil
	}
	if set["remove-image"] && !*clearImages {
		if *removeImage < 0 || *removeImage >= len(d.Images) {
			return errors.Newf("image index %d out of range (have %d)", *removeImage, len(d.Images))
		}
		d.Images = append(d.Images[:*removeImage], d.Images[*removeImage+1:]...)
	}
	if len(d.Images)+len(imgs) > model.MaxImages {
		fmt.Fprintf(Out, "! prize already has %d images, only %d more are kept\n", len(d.Images), max(0, model.MaxImages-len(d.Images)))
	}
	d.Images = model.AppendImages(d.Images, imgs)

	p, err := svc.Save(ctx, d)
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, "Updated:")
	printPrize(Out, p)
	return nil
}

func init() { RegisterCmd(editCmd{}) }
