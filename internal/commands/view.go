package commands

import (
	"context"
	"fmt"

	"PrizeKeeper/internal/config"
	fsrepo "PrizeKeeper/internal/repo/fs"
)

type viewCmd struct{}

func (viewCmd) Name() string        { return "view" }
func (viewCmd) Description() string { return "Показать или сохранить режим списка по умолчанию" }
func (viewCmd) Usage() string       { return "view [grid|list]" }

func (viewCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	st := fsrepo.PrefsFSStore{Dir: cfg.PrefsDir}
	switch len(args) {
	case 0:
		m, err := st.LoadViewMode()
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "View: %s\n", m)
		return nil
	case 1:
		m, err := fsrepo.ParseViewMode(args[0])
		if err != nil {
			return ErrUsage
		}
		if err := st.SaveViewMode(m); err != nil {
			return err
		}
		fmt.Fprintf(Out, "View set to %s\n", m)
		return nil
	default:
		return ErrUsage
	}
}

func init() { RegisterCmd(viewCmd{}) }
