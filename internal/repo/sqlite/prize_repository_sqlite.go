package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"PrizeKeeper/internal/model"
	"PrizeKeeper/internal/repo"
)

// schemaVersion is written to PRAGMA user_version after migration.
const schemaVersion = 1

// PrizeRepositorySQLite — репозиторий призов поверх локальной БД SQLite.
// The connection is opened lazily on first use; concurrent first callers share
// one bootstrap outcome.
type PrizeRepositorySQLite struct {
	path string
	log  *zap.SugaredLogger

	group singleflight.Group
	mu    sync.Mutex
	db    *gorm.DB

	bootstraps atomic.Int64
}

var _ repo.PrizeRepository = (*PrizeRepositorySQLite)(nil)

// New returns a repository backed by the SQLite file at path.
// Nothing is opened until the first operation.
func New(path string, log *zap.SugaredLogger) *PrizeRepositorySQLite {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &PrizeRepositorySQLite{path: path, log: log}
}

// Path returns the database file path.
func (r *PrizeRepositorySQLite) Path() string { return r.path }

// Close закрывает соединение с БД. The next operation reopens it.
func (r *PrizeRepositorySQLite) Close() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	db := r.db
	r.db = nil
	r.mu.Unlock()
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// conn returns the shared handle, bootstrapping it once if needed.
func (r *PrizeRepositorySQLite) conn(ctx context.Context) (*gorm.DB, error) {
	r.mu.Lock()
	db := r.db
	r.mu.Unlock()
	if db != nil {
		return db.WithContext(ctx), nil
	}

	v, err, _ := r.group.Do("open", func() (any, error) {
		r.mu.Lock()
		if r.db != nil {
			db := r.db
			r.mu.Unlock()
			return db, nil
		}
		r.mu.Unlock()

		db, err := r.open()
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.db = db
		r.mu.Unlock()
		return db, nil
	})
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "opening prize store %s", r.path), repo.ErrStoreUnavailable)
	}
	return v.(*gorm.DB).WithContext(ctx), nil
}

func (r *PrizeRepositorySQLite) open() (*gorm.DB, error) {
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, errors.Wrap(err, "creating database directory")
		}
	}
	dsn := r.path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{
		Logger: gormlogger.New(zapWriter{r.log}, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, errors.Wrap(err, "opening sqlite")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// один писатель на файл: транзакции не конкурируют за блокировку SQLite
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&prizeRow{}, &imageRow{}); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "migrating schema")
	}
	if err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)).Error; err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "setting schema version")
	}
	n := r.bootstraps.Add(1)
	r.log.Infow("prize store ready", "path", r.path, "schema_version", schemaVersion, "bootstrap", n)
	return db, nil
}

// GetAll возвращает все записи (порядок не гарантирован).
func (r *PrizeRepositorySQLite) GetAll(ctx context.Context) ([]model.Prize, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var rows []prizeRow
	err = db.Preload("Images", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	}).Find(&rows).Error
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "reading prizes"), repo.ErrStoreUnavailable)
	}
	res := make([]model.Prize, 0, len(rows))
	for _, row := range rows {
		res = append(res, row.toModel())
	}
	return res, nil
}

// Put вставляет или полностью заменяет запись в одной транзакции.
func (r *PrizeRepositorySQLite) Put(ctx context.Context, p model.Prize) error {
	if err := p.Validate(); err != nil {
		return err
	}
	db, err := r.conn(ctx)
	if err != nil {
		return err
	}
	row := fromModel(p)
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&row).Error; err != nil {
			return err
		}
		if err := tx.Where("prize_id = ?", row.ID).Delete(&imageRow{}).Error; err != nil {
			return err
		}
		if len(row.Images) > 0 {
			if err := tx.Create(&row.Images).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "putting prize %s", p.ID), repo.ErrWriteFailed)
	}
	r.log.Debugw("prize stored", "id", p.ID, "updated_at", p.UpdatedAt, "images", len(p.Images))
	return nil
}

// Delete удаляет запись; отсутствие записи ошибкой не считается.
func (r *PrizeRepositorySQLite) Delete(ctx context.Context, id string) error {
	db, err := r.conn(ctx)
	if err != nil {
		return err
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("prize_id = ?", id).Delete(&imageRow{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&prizeRow{}).Error
	})
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "deleting prize %s", id), repo.ErrWriteFailed)
	}
	r.log.Debugw("prize deleted", "id", id)
	return nil
}

// zapWriter routes gorm's logger into zap.
type zapWriter struct {
	log *zap.SugaredLogger
}

func (w zapWriter) Printf(format string, args ...any) {
	w.log.Warnf(format, args...)
}
