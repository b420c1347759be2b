package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"PrizeKeeper/internal/config"
	"PrizeKeeper/internal/imaging"
	"PrizeKeeper/internal/model"
	"PrizeKeeper/internal/repo"
)

// Dispatch is the single entry point to execute CLI commands.
// It prints help and usage messages and returns a process exit code.
func Dispatch(ctx context.Context, cfg *config.Config, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return 2
	}

	name := strings.ToLower(args[0])
	if name == "help" || name == "-h" || name == "--help" { // prizes help [command]
		if len(args) == 1 {
			fmt.Fprint(Out, FormatGlobalUsage())
			return 0
		}
		if c, ok := Get(args[1]); ok {
			fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
			return 0
		}
		fmt.Fprintf(Out, "Unknown command: %s\n\n", args[1])
		fmt.Fprint(Out, FormatGlobalUsage())
		return 2
	}

	c, ok := Get(name)
	if !ok {
		fmt.Fprintf(Out, "Unknown command: %s\n\n", name)
		fmt.Fprint(Out, FormatGlobalUsage())
		return 2
	}

	err := c.Run(ctx, cfg, args[1:])
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
		return 2
	default:
		log.Debugw("command failed", "command", name, "error", fmt.Sprintf("%+v", err))
		fmt.Fprintf(Out, "%s error: %s\n", name, describe(err))
		return 1
	}
}

// describe переводит ошибку в сообщение для пользователя по её классу.
func describe(err error) string {
	switch {
	case model.IsValidationFailed(err):
		return "cannot save: " + err.Error()
	case repo.IsStoreUnavailable(err):
		return "storage unavailable: " + err.Error()
	case repo.IsWriteFailed(err):
		return "write failed, nothing was changed: " + err.Error()
	case imaging.IsImageReadFailed(err):
		return "could not read images, none were attached: " + err.Error()
	default:
		return err.Error()
	}
}
