package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dwikikusuma/shoping-storefront/internal/cart/domain"
	"github.com/dwikikusuma/shoping-storefront/internal/cart/infra/memory"
	"github.com/dwikikusuma/shoping-storefront/pkg/money"
)

var (
	mug  = domain.Product{ID: 1, Name: "Mug", Price: money.MustParse("10.00"), Stock: 5, CategoryID: 2}
	book = domain.Product{ID: 2, Name: "Book", Price: money.MustParse("15.00"), Stock: 3, CategoryID: 3}
)

type failingPersister struct{ loadErr, saveErr error }

func (f failingPersister) Load(context.Context, string) ([]byte, error) { return nil, f.loadErr }
func (f failingPersister) Save(context.Context, string, []byte) error { return f.saveErr }

func TestStore_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("new product appends a line", func(t *testing.T) {
		s := NewStore(ctx, "k", nil, nil)
		snap := s.AddItem(ctx, mug, 2)
		if len(snap.Lines) != 1 || snap.Lines[0].Quantity != 2 {
			t.Fatalf("unexpected lines: %+v", snap.Lines)
		}
		if snap.Subtotal.String() != "20.00" {
			t.Fatalf("subtotal = %s", snap.Subtotal)
		}
	})

	t.Run("existing product increments", func(t *testing.T) {
		s := NewStore(ctx, "k", nil, nil)
		s.AddItem(ctx, mug, 1)
		snap := s.AddItem(ctx, mug, 3)
		if len(snap.Lines) != 1 || snap.Lines[0].Quantity != 4 {
			t.Fatalf("expected one line with qty 4, got %+v", snap.Lines)
		}
	})

	t.Run("quantity below one is treated as one", func(t *testing.T) {
		s := NewStore(ctx, "k", nil, nil)
		snap := s.AddItem(ctx, mug, 0)
		if snap.Lines[0].Quantity != 1 {
			t.Fatalf("qty = %d", snap.Lines[0].Quantity)
		}
	})

	t.Run("price is snapshotted at add time", func(t *testing.T) {
		s := NewStore(ctx, "k", nil, nil)
		s.AddItem(ctx, mug, 1)
		cheaper := mug
		cheaper.Price = money.MustParse("1.00")
		snap := s.AddItem(ctx, cheaper, 1)
		if snap.Lines[0].Price.String() != "10.00" {
			t.Fatalf("price changed to %s", snap.Lines[0].Price)
		}
	})
}

func TestStore_RemoveAndUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, "k", nil, nil)
	s.AddItem(ctx, mug, 1)
	s.AddItem(ctx, book, 2)

	notified := 0
	s.Subscribe(func(domain.Snapshot) { notified++ })

	snap := s.RemoveItem(ctx, 99)
	if len(snap.Lines) != 2 || notified != 0 {
		t.Fatalf("removing an absent product must be a silent no-op")
	}

	snap = s.UpdateQuantity(ctx, book.ID, 5)
	if l, _ := snap.Line(book.ID); l.Quantity != 5 {
		t.Fatalf("qty = %d", l.Quantity)
	}
	if snap.ItemCount != 6 {
		t.Fatalf("item count = %d", snap.ItemCount)
	}

	snap = s.UpdateQuantity(ctx, book.ID, 0)
	if _, ok := snap.Line(book.ID); ok {
		t.Fatalf("quantity 0 should remove the line")
	}

	snap = s.RemoveItem(ctx, mug.ID)
	if !snap.Empty() {
		t.Fatalf("expected empty cart, got %+v", snap.Lines)
	}
	if notified != 3 {
		t.Fatalf("expected 3 notifications, got %d", notified)
	}
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, "k", nil, nil)
	s.AddItem(ctx, mug, 1)

	snap := s.Snapshot()
	snap.Lines[0].Quantity = 42

	if got := s.Snapshot().Lines[0].Quantity; got != 1 {
		t.Fatalf("snapshot mutation leaked into the store: qty %d", got)
	}
}

func TestStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, "k", nil, nil)

	var got []int
	unsubscribe := s.Subscribe(func(snap domain.Snapshot) {
		// observers may read the store
		got = append(got, s.Snapshot().ItemCount)
	})

	s.AddItem(ctx, mug, 2)
	s.Clear(ctx)
	unsubscribe()
	s.AddItem(ctx, mug, 1)

	if len(got) != 2 || got[0] != 2 || got[1] != 0 {
		t.Fatalf("unexpected notifications: %v", got)
	}
}

func TestStore_PersistAndRestore(t *testing.T) {
	ctx := context.Background()
	p := memory.NewPersister()

	s := NewStore(ctx, StorageKey("abc"), p, nil)
	s.AddItem(ctx, mug, 2)
	s.AddItem(ctx, book, 1)

	restored := NewStore(ctx, StorageKey("abc"), p, nil).Snapshot()
	if len(restored.Lines) != 2 || restored.Subtotal.String() != "35.00" {
		t.Fatalf("restore mismatch: %+v", restored)
	}

	raw, _ := p.Load(ctx, "cart:abc")
	lines, err := domain.Decode(raw)
	if err != nil || lines[0].ProductID != mug.ID {
		t.Fatalf("unexpected persisted payload %s (%v)", raw, err)
	}

	s.Clear(ctx)
	if !NewStore(ctx, StorageKey("abc"), p, nil).Snapshot().Empty() {
		t.Fatalf("clear was not persisted")
	}
}

func TestStore_RestoreFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()

	cases := map[string][]byte{
		"invalid json":   []byte(`{not json`),
		"zero quantity":  []byte(`[{"id_key":1,"name":"x","price":1,"stock":1,"quantity":0}]`),
		"missing id":     []byte(`[{"name":"x","price":1,"stock":1,"quantity":1}]`),
		"duplicate line": []byte(`[{"id_key":1,"quantity":1},{"id_key":1,"quantity":2}]`),
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			p := memory.NewPersister()
			p.Put("cart:x", payload)
			if !NewStore(ctx, "cart:x", p, nil).Snapshot().Empty() {
				t.Fatalf("expected empty cart for %s", payload)
			}
		})
	}

	t.Run("load error", func(t *testing.T) {
		s := NewStore(ctx, "cart:x", failingPersister{loadErr: errors.New("disk gone")}, nil)
		if !s.Snapshot().Empty() {
			t.Fatalf("expected empty cart")
		}
	})
}

func TestStore_SaveFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, "cart:x", failingPersister{saveErr: errors.New("read-only")}, nil)

	snap := s.AddItem(ctx, mug, 1)
	if len(snap.Lines) != 1 {
		t.Fatalf("mutation must apply even when persisting fails")
	}
}

func TestStore_SaveSurvivesCancelledContext(t *testing.T) {
	p := memory.NewPersister()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewStore(ctx, "cart:x", p, nil)
	s.AddItem(ctx, mug, 1)

	raw, _ := p.Load(context.Background(), "cart:x")
	if len(raw) == 0 {
		t.Fatalf("cart was not saved after request cancellation")
	}
}

func TestRegistry(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(memory.NewPersister(), nil)

	a := r.Get(ctx, "a")
	if r.Get(ctx, "a") != a {
		t.Fatalf("same session must return the same store")
	}
	if r.Get(ctx, "b") == a {
		t.Fatalf("sessions must not share a store")
	}

	a.AddItem(ctx, mug, 1)
	a.mu.Lock()
	a.lastUsed = time.Now().Add(-2 * time.Hour)
	a.mu.Unlock()

	if n := r.Sweep(time.Hour); n != 1 {
		t.Fatalf("swept %d stores, want 1", n)
	}
	if r.Len() != 1 {
		t.Fatalf("len = %d", r.Len())
	}

	again := r.Get(ctx, "a")
	if again == a {
		t.Fatalf("expected a fresh store after sweep")
	}
	if again.Snapshot().ItemCount != 1 {
		t.Fatalf("swept cart was not restored from the persister")
	}
}

func TestRegistry_SweepWithoutPersisterKeepsStores(t *testing.T) {
	r := NewRegistry(nil, nil)
	r.Get(context.Background(), "a")
	if n := r.Sweep(0); n != 0 {
		t.Fatalf("stores without a persister must not be unloaded")
	}
}
