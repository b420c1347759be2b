package commands

import (
	"context"
	"fmt"
	"strconv"

	"PrizeKeeper/internal/config"
	"PrizeKeeper/internal/model"
)

type qtyCmd struct{}

func (qtyCmd) Name() string        { return "qty" }
func (qtyCmd) Description() string { return "Установить количество" }
func (qtyCmd) Usage() string       { return "qty <id> <n>" }

func (qtyCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
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
	if err := svc.ChangeQuantity(ctx, p.ID, model.ParseQuantity(args[1])); err != nil {
		return err
	}
	return printQuantity(svc.Get(p.ID))
}

// adjustCmd — inc/dec: шаг по умолчанию 1, dec не уходит ниже нуля.
type adjustCmd struct {
	name string
	sign int
}

func (c adjustCmd) Name() string { return c.name }
func (c adjustCmd) Description() string {
	if c.sign < 0 {
		return "Уменьшить количество (не ниже 0)"
	}
	return "Увеличить количество"
}
func (c adjustCmd) Usage() string { return c.name + " <id> [step]" }

func (c adjustCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	step := 1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return ErrUsage
		}
		step = n
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
	if err := svc.AdjustQuantity(ctx, p.ID, c.sign*step); err != nil {
		return err
	}
	return printQuantity(svc.Get(p.ID))
}

func printQuantity(p model.Prize, ok bool) error {
	if !ok {
		return ErrNotFound
	}
	fmt.Fprintf(Out, "%s  %s  quantity=%d\n", shortID(p.ID), p.Name, p.Quantity)
	return nil
}

func init() {
	RegisterCmd(qtyCmd{})
	RegisterCmd(adjustCmd{name: "inc", sign: 1})
	RegisterCmd(adjustCmd{name: "dec", sign: -1})
}
