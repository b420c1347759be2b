package service

import (
	"context"

	"PrizeKeeper/internal/model"
)

// LoadState — состояние первичной загрузки снапшота.
type LoadState int

const (
	// LoadStateLoading: the snapshot has not been read from the store yet.
	LoadStateLoading LoadState = iota
	// LoadStateReady: the snapshot mirrors the store.
	LoadStateReady
	// LoadStateFailed: the last load failed; see State for the error.
	LoadStateFailed
)

func (s LoadState) String() string {
	switch s {
	case LoadStateLoading:
		return "loading"
	case LoadStateReady:
		return "ready"
	case LoadStateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// PrizeService описывает юзкейс-уровень, с которым работает слой представления.
type PrizeService interface {
	// Load reads every prize from the store and replaces the snapshot.
	Load(ctx context.Context) error

	// Save creates (empty draft ID) or updates a prize and returns the stored record.
	Save(ctx context.Context, d model.Draft) (model.Prize, error)

	// Delete removes the prize durably, then from the snapshot.
	Delete(ctx context.Context, id string) error

	// ChangeQuantity sets a new quantity; an unknown id is a no-op.
	ChangeQuantity(ctx context.Context, id string, qty int) error

	// AdjustQuantity adds delta to the current quantity, clamped into [0, model.MaxQuantity].
	AdjustQuantity(ctx context.Context, id string, delta int) error

	// Snapshot returns a copy of the current records, most recently updated first.
	Snapshot() []model.Prize

	// Get returns one record from the snapshot.
	Get(id string) (model.Prize, bool)

	// State reports the load state and the last load error.
	State() (LoadState, error)
}
