package repo

import (
	"context"

	"github.com/cockroachdb/errors"

	"PrizeKeeper/internal/model"
)

// PrizeRepository определяет порт доступа к локальному хранилищу призов.
type PrizeRepository interface {
	// GetAll returns every stored prize in no particular order.
	GetAll(ctx context.Context) ([]model.Prize, error)

	// Put inserts or fully replaces the prize with the same id.
	Put(ctx context.Context, p model.Prize) error

	// Delete removes the prize; a missing id is not an error.
	Delete(ctx context.Context, id string) error
}

var (
	// ErrStoreUnavailable: the storage engine could not be opened or initialized.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrWriteFailed: a write transaction failed after the store was open.
	ErrWriteFailed = errors.New("write failed")
)

// IsStoreUnavailable reports whether err means the store could not be opened.
func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

// IsWriteFailed reports whether err is a failed put/delete.
func IsWriteFailed(err error) bool {
	return errors.Is(err, ErrWriteFailed)
}
