package commands

import (
	"context"
	"fmt"

	"PrizeKeeper/internal/config"
)

type rmCmd struct{}

func (rmCmd) Name() string        { return "rm" }
func (rmCmd) Description() string { return "Удалить приз" }
func (rmCmd) Usage() string       { return "rm <id>" }

func (rmCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
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
	if err := svc.Delete(ctx, p.ID); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Deleted: %s (%s)\n", p.Name, p.ID)
	return nil
}

func init() { RegisterCmd(rmCmd{}) }
