package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"PrizeKeeper/internal/config"
	"PrizeKeeper/internal/model"
)

type categoriesCmd struct{}

func (categoriesCmd) Name() string        { return "categories" }
func (categoriesCmd) Description() string { return "Категории и число призов в каждой" }
func (categoriesCmd) Usage() string       { return "categories" }

func (categoriesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	svc, done, err := openService(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()

	counts := map[model.Category]int{}
	var extra []model.Category
	for _, p := range svc.Snapshot() {
		if _, seen := counts[p.Category]; !seen && !p.Category.Known() {
			extra = append(extra, p.Category)
		}
		counts[p.Category] += p.Quantity
	}

	tw := tabwriter.NewWriter(Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tQTY")
	for _, c := range append(model.Categories(), extra...) {
		fmt.Fprintf(tw, "%s\t%d\n", c, counts[c])
	}
	return tw.Flush()
}

func init() { RegisterCmd(categoriesCmd{}) }
