package service

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"PrizeKeeper/internal/model"
	"PrizeKeeper/internal/repo"
)

// ErrNotLoaded: an existing prize was edited before the snapshot was loaded.
var ErrNotLoaded = errors.New("prizes are not loaded yet")

// loadWeight занимает весь gate: Load не пересекается ни с одной мутацией.
const loadWeight = 1 << 20

// PrizeSynchronizer держит снапшот призов в памяти и согласует его с хранилищем.
// Saves and quantity changes are optimistic and rolled back on a failed write;
// deletes hit the store first. Mutations of the same id are serialized, and a
// Load waits for in-flight mutations while holding back new ones.
type PrizeSynchronizer struct {
	repo  repo.PrizeRepository
	log   *zap.SugaredLogger
	now   func() time.Time
	newID func() string

	mu      sync.RWMutex
	items   []model.Prize
	state   LoadState
	loadErr error

	loads singleflight.Group
	gate  *semaphore.Weighted

	locksMu sync.Mutex
	locks   map[string]*idLock
}

var _ PrizeService = (*PrizeSynchronizer)(nil)

type idLock struct {
	sem  *semaphore.Weighted
	refs int
}

// NewPrizeSynchronizer создаёт синхронизатор поверх переданного репозитория.
func NewPrizeSynchronizer(r repo.PrizeRepository, log *zap.SugaredLogger) *PrizeSynchronizer {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &PrizeSynchronizer{
		repo:  r,
		log:   log,
		now:   time.Now,
		newID: model.NewID,
		state: LoadStateLoading,
		gate:  semaphore.NewWeighted(loadWeight),
		locks: make(map[string]*idLock),
	}
}

// Load читает все записи и заменяет снапшот. Concurrent callers share one read.
// A failed reload keeps the previous records but reports LoadStateFailed.
func (s *PrizeSynchronizer) Load(ctx context.Context) error {
	_, err, _ := s.loads.Do("load", func() (any, error) {
		if err := s.gate.Acquire(ctx, loadWeight); err != nil {
			return nil, errors.Wrap(err, "waiting for pending changes")
		}
		defer s.gate.Release(loadWeight)

		prizes, err := s.repo.GetAll(ctx)
		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			s.state = LoadStateFailed
			s.loadErr = err
			s.log.Errorw("loading prizes failed", "error", err)
			return nil, err
		}
		model.SortByUpdatedDesc(prizes)
		s.items = prizes
		s.state = LoadStateReady
		s.loadErr = nil
		s.log.Debugw("prizes loaded", "count", len(prizes))
		return nil, nil
	})
	return err
}

// Save применяет черновик к снапшоту сразу и затем пишет запись в хранилище.
func (s *PrizeSynchronizer) Save(ctx context.Context, d model.Draft) (model.Prize, error) {
	d = d.Normalize()
	if err := d.Validate(); err != nil {
		return model.Prize{}, err
	}
	id := d.ID
	if id == "" {
		id = s.newID()
	}

	unlock, err := s.enter(ctx, id)
	if err != nil {
		return model.Prize{}, err
	}
	defer unlock()

	s.mu.Lock()
	prev, existed := s.find(id)
	var next model.Prize
	switch {
	case existed:
		next = d.Build(id, prev.CreatedAt, s.nextUpdatedAt(prev.UpdatedAt))
		s.replace(next)
	case d.ID != "" && d.CreatedAt == 0 && s.state != LoadStateReady:
		// без снапшота неизвестен createdAt существующей записи
		s.mu.Unlock()
		return model.Prize{}, errors.Wrapf(ErrNotLoaded, "editing prize %s", id)
	default:
		createdAt := d.CreatedAt
		if createdAt == 0 {
			createdAt = s.nowMs()
		}
		next = d.Build(id, createdAt, s.nextUpdatedAt(createdAt-1))
		s.items = append([]model.Prize{next}, s.items...)
	}
	model.SortByUpdatedDesc(s.items)
	s.mu.Unlock()

	if err := s.repo.Put(ctx, next); err != nil {
		s.rollback(id, prev, existed)
		s.log.Warnw("save failed, snapshot rolled back", "id", id, "error", err)
		return model.Prize{}, errors.Wrap(err, "saving prize")
	}
	return next.Clone(), nil
}

// Delete удаляет запись из хранилища и только после этого из снапшота.
func (s *PrizeSynchronizer) Delete(ctx context.Context, id string) error {
	unlock, err := s.enter(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "deleting prize")
	}
	s.mu.Lock()
	s.remove(id)
	s.mu.Unlock()
	return nil
}

// ChangeQuantity выставляет новое количество. Negative values become 0.
func (s *PrizeSynchronizer) ChangeQuantity(ctx context.Context, id string, qty int) error {
	return s.updateQuantity(ctx, id, func(int) int { return model.NormalizeQuantity(qty) })
}

// AdjustQuantity прибавляет delta к текущему значению (read-modify-write под блокировкой id).
func (s *PrizeSynchronizer) AdjustQuantity(ctx context.Context, id string, delta int) error {
	return s.updateQuantity(ctx, id, func(cur int) int { return model.AddQuantity(cur, delta) })
}

func (s *PrizeSynchronizer) updateQuantity(ctx context.Context, id string, apply func(int) int) error {
	unlock, err := s.enter(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	s.mu.Lock()
	prev, ok := s.find(id)
	if !ok {
		s.mu.Unlock()
		s.log.Debugw("quantity change for unknown prize ignored", "id", id)
		return nil
	}
	next := prev.Clone()
	next.Quantity = apply(prev.Quantity)
	next.UpdatedAt = s.nextUpdatedAt(prev.UpdatedAt)
	s.replace(next)
	model.SortByUpdatedDesc(s.items)
	s.mu.Unlock()

	if err := s.repo.Put(ctx, next); err != nil {
		s.rollback(id, prev, true)
		s.log.Warnw("quantity change failed, snapshot rolled back", "id", id, "error", err)
		return errors.Wrap(err, "changing quantity")
	}
	return nil
}

// Snapshot возвращает копию текущего снапшота.
func (s *PrizeSynchronizer) Snapshot() []model.Prize {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Prize, len(s.items))
	for i, p := range s.items {
		out[i] = p.Clone()
	}
	return out
}

// Get возвращает запись по id.
func (s *PrizeSynchronizer) Get(id string) (model.Prize, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.find(id)
	if !ok {
		return model.Prize{}, false
	}
	return p.Clone(), true
}

// State returns the current load state and the error of the last failed load.
func (s *PrizeSynchronizer) State() (LoadState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.loadErr
}

// rollback возвращает запись id к значению до операции.
func (s *PrizeSynchronizer) rollback(id string, prev model.Prize, existed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existed {
		// a concurrent Load may already have replaced the snapshot; replace is then a no-op
		s.replace(prev)
	} else {
		s.remove(id)
	}
	model.SortByUpdatedDesc(s.items)
}

// find, replace and remove expect s.mu to be held.
func (s *PrizeSynchronizer) find(id string) (model.Prize, bool) {
	for _, p := range s.items {
		if p.ID == id {
			return p, true
		}
	}
	return model.Prize{}, false
}

func (s *PrizeSynchronizer) replace(p model.Prize) {
	for i := range s.items {
		if s.items[i].ID == p.ID {
			s.items[i] = p
			return
		}
	}
}

func (s *PrizeSynchronizer) remove(id string) {
	out := s.items[:0]
	for _, p := range s.items {
		if p.ID != id {
			out = append(out, p)
		}
	}
	// не держим ссылки на удалённые записи в хвосте массива
	for i := len(out); i < len(s.items); i++ {
		s.items[i] = model.Prize{}
	}
	s.items = out
}

func (s *PrizeSynchronizer) nowMs() int64 {
	return s.now().UnixMilli()
}

// nextUpdatedAt keeps updatedAt strictly increasing per record even if the clock stalls.
func (s *PrizeSynchronizer) nextUpdatedAt(prev int64) int64 {
	ts := s.nowMs()
	if ts <= prev {
		return prev + 1
	}
	return ts
}

// enter пропускает мутацию через gate (не во время Load) и очередь id.
func (s *PrizeSynchronizer) enter(ctx context.Context, id string) (func(), error) {
	if err := s.gate.Acquire(ctx, 1); err != nil {
		return nil, errors.Wrap(err, "waiting for load")
	}
	unlock, err := s.lock(ctx, id)
	if err != nil {
		s.gate.Release(1)
		return nil, err
	}
	return func() {
		unlock()
		s.gate.Release(1)
	}, nil
}

// lock берёт очередь операций для id; освобождение через возвращённую функцию.
func (s *PrizeSynchronizer) lock(ctx context.Context, id string) (func(), error) {
	s.locksMu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &idLock{sem: semaphore.NewWeighted(1)}
		s.locks[id] = l
	}
	l.refs++
	s.locksMu.Unlock()

	release := func() {
		s.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.locksMu.Unlock()
	}

	if err := l.sem.Acquire(ctx, 1); err != nil {
		release()
		return nil, errors.Wrapf(err, "waiting for prize %s", id)
	}
	return func() {
		l.sem.Release(1)
		release()
	}, nil
}
