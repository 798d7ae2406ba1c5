package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dwikikusuma/shoping-storefront/internal/cart/domain"
)

const persistTimeout = 3 * time.Second

// Store is the single source of truth for one session's cart. Only its
// methods mutate the lines; readers get copies through Snapshot.
type Store struct {
	mu        sync.Mutex
	key       string
	lines     []domain.Line
	persister Persister
	log       *slog.Logger

	obsMu     sync.Mutex
	observers map[int]func(domain.Snapshot)
	nextObs   int

	lastUsed time.Time
}

// NewStore restores the cart saved under key. A missing, unreadable or corrupt
// payload starts an empty cart; that is logged and never returned as an error.
func NewStore(ctx context.Context, key string, p Persister, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	s := &Store{
		key:       key,
		persister: p,
		log:       log.With(slog.String("cart", key)),
		observers: make(map[int]func(domain.Snapshot)),
		lastUsed:  time.Now(),
	}
	s.lines = s.restore(ctx)
	return s
}

func (s *Store) restore(ctx context.Context) []domain.Line {
	if s.persister == nil {
		return nil
	}
	raw, err := s.persister.Load(ctx, s.key)
	if err != nil {
		s.log.Warn("cart restore failed, starting empty", slog.Any("err", err))
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	lines, err := domain.Decode(raw)
	if err != nil {
		s.log.Warn("discarding corrupt cart", slog.Any("err", err))
		return nil
	}
	return lines
}

// AddItem appends product with a price snapshot, or bumps the quantity of the
// existing line. Quantities below one are treated as one; a line never holds
// more than domain.MaxQuantity.
func (s *Store) AddItem(ctx context.Context, p domain.Product, quantity int) domain.Snapshot {
	quantity = clampQuantity(quantity)

	s.mu.Lock()
	found := false
	for i := range s.lines {
		if s.lines[i].ProductID == p.ID {
			if s.lines[i].Quantity > domain.MaxQuantity-quantity {
				s.lines[i].Quantity = domain.MaxQuantity
			} else {
				s.lines[i].Quantity += quantity
			}
			found = true
			break
		}
	}
	if !found {
		s.lines = append(s.lines, domain.Line{
			ProductID:  p.ID,
			Name:       p.Name,
			Price:      p.Price,
			Stock:      p.Stock,
			CategoryID: p.CategoryID,
			Quantity:   quantity,
		})
	}
	snap := s.commitLocked(ctx)
	s.mu.Unlock()

	s.notify(snap)
	return snap
}

// RemoveItem drops the line for productID. Removing an absent product is a no-op.
func (s *Store) RemoveItem(ctx context.Context, productID int64) domain.Snapshot {
	s.mu.Lock()
	idx := s.indexLocked(productID)
	if idx < 0 {
		snap := domain.NewSnapshot(s.lines)
		s.mu.Unlock()
		return snap
	}
	s.lines = append(s.lines[:idx:idx], s.lines[idx+1:]...)
	snap := s.commitLocked(ctx)
	s.mu.Unlock()

	s.notify(snap)
	return snap
}

// UpdateQuantity replaces the quantity of a line; below one it removes the line.
// Stock is not checked here, checkout does that against live data.
func (s *Store) UpdateQuantity(ctx context.Context, productID int64, quantity int) domain.Snapshot {
	if quantity < 1 {
		return s.RemoveItem(ctx, productID)
	}
	quantity = clampQuantity(quantity)

	s.mu.Lock()
	idx := s.indexLocked(productID)
	if idx < 0 || s.lines[idx].Quantity == quantity {
		snap := domain.NewSnapshot(s.lines)
		s.mu.Unlock()
		return snap
	}
	s.lines[idx].Quantity = quantity
	snap := s.commitLocked(ctx)
	s.mu.Unlock()

	s.notify(snap)
	return snap
}

func (s *Store) Clear(ctx context.Context) domain.Snapshot {
	s.mu.Lock()
	s.lines = nil
	snap := s.commitLocked(ctx)
	s.mu.Unlock()

	s.notify(snap)
	return snap
}

func (s *Store) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	return domain.NewSnapshot(s.lines)
}

// Subscribe registers fn to be called synchronously after every mutation.
// fn runs outside the store lock and may read the store.
func (s *Store) Subscribe(fn func(domain.Snapshot)) (unsubscribe func()) {
	s.obsMu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.obsMu.Unlock()

	return func() {
		s.obsMu.Lock()
		delete(s.observers, id)
		s.obsMu.Unlock()
	}
}

func (s *Store) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

func clampQuantity(q int) int {
	switch {
	case q < 1:
		return 1
	case q > domain.MaxQuantity:
		return domain.MaxQuantity
	default:
		return q
	}
}

func (s *Store) touch() {
	s.mu.Lock()
	s.lastUsed = time.Now()
	s.mu.Unlock()
}

func (s *Store) indexLocked(productID int64) int {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// commitLocked persists the full state and returns the new snapshot.
// The save is detached from ctx cancellation so a dropped request cannot
// leave the stored cart behind the in-memory one.
func (s *Store) commitLocked(ctx context.Context) domain.Snapshot {
	s.lastUsed = time.Now()
	snap := domain.NewSnapshot(s.lines)
	if s.persister == nil {
		return snap
	}

	payload, err := domain.Encode(s.lines)
	if err != nil {
		s.log.Error("cart encode failed", slog.Any("err", err))
		return snap
	}

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()
	if err := s.persister.Save(saveCtx, s.key, payload); err != nil {
		s.log.Warn("cart persist failed", slog.Any("err", err))
	}
	return snap
}

func (s *Store) notify(snap domain.Snapshot) {
	s.obsMu.Lock()
	fns := make([]func(domain.Snapshot), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.obsMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
