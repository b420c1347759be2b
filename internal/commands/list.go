package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"PrizeKeeper/internal/config"
	"PrizeKeeper/internal/model"
	fsrepo "PrizeKeeper/internal/repo/fs"
)

type listCmd struct{}

func (listCmd) Name() string        { return "list" }
func (listCmd) Description() string { return "Показать призы (сначала недавно изменённые)" }
func (listCmd) Usage() string {
	return "list [--q <text>] [--category <c>] [--view grid|list]"
}

func (listCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("list")
	q := fs.String("q", "", "search in name and note")
	category := fs.String("category", "", "only this category")
	view := fs.String("view", "", "grid or list (default: saved preference)")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}

	mode, err := fsrepo.PrefsFSStore{Dir: cfg.PrefsDir}.LoadViewMode()
	if err != nil {
		log.Warnw("view preference ignored", "error", err)
	}
	if *view != "" {
		if mode, err = fsrepo.ParseViewMode(*view); err != nil {
			return ErrUsage
		}
	}

	svc, done, err := openService(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()

	all := svc.Snapshot()
	list := model.Filter(all, *q, model.Category(strings.TrimSpace(*category)))
	if len(list) == 0 {
		if len(all) == 0 {
			fmt.Fprintln(Out, "Нет призов")
		} else {
			fmt.Fprintln(Out, "Ничего не найдено")
		}
		return nil
	}

	if mode == fsrepo.ViewList {
		for _, p := range list {
			fmt.Fprintln(Out, "-")
			printPrize(Out, p)
		}
	} else {
		tw := tabwriter.NewWriter(Out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tQTY\tIMAGES\tUPDATED")
		for _, p := range list {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n", shortID(p.ID), p.Name, p.Category, p.Quantity, len(p.Images), formatTime(p.UpdatedAt))
		}
		_ = tw.Flush()
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(list))
	return nil
}

func init() { RegisterCmd(listCmd{}) }
