package bootstrap

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"PrizeKeeper/internal/config"
	reposqlite "PrizeKeeper/internal/repo/sqlite"
	"PrizeKeeper/internal/service"
)

// OpenSynchronizer открывает хранилище призов по cfg.DBPath, загружает снапшот
// и возвращает (svc, cleanup, error).
// cleanup необходимо вызвать после окончания работы, чтобы закрыть соединение с БД.
func OpenSynchronizer(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) (service.PrizeService, func() error, error) {
	if cfg == nil || cfg.DBPath == "" {
		return nil, nil, errors.New("database path is not configured")
	}
	r := reposqlite.New(cfg.DBPath, log)
	svc := service.NewPrizeSynchronizer(r, log)
	if err := svc.Load(ctx); err != nil {
		_ = r.Close()
		return nil, nil, errors.Wrap(err, "load prizes")
	}
	cleanup := func() error { return r.Close() }
	return svc, cleanup, nil
}
