package domain

import (
	"errors"
	"testing"
)

func TestMachine_ForwardOnly(t *testing.T) {
	var seen []Transition
	m := NewMachine(func(tr Transition) { seen = append(seen, tr) })

	for s := StateValidatingStock; s <= StateSucceeded; s++ {
		if err := m.Advance(s); err != nil {
			t.Fatalf("advance to %s: %v", s, err)
		}
	}
	if m.State() != StateSucceeded {
		t.Fatalf("state = %s", m.State())
	}
	if len(seen) != 7 {
		t.Fatalf("expected 7 transitions, got %d", len(seen))
	}

	t.Run("terminal state cannot move", func(t *testing.T) {
		if err := m.Advance(StateFailed); !errors.Is(err, ErrIllegalTransition) {
			t.Fatalf("expected ErrIllegalTransition, got %v", err)
		}
		if _, err := m.Fail(); !errors.Is(err, ErrIllegalTransition) {
			t.Fatalf("expected ErrIllegalTransition, got %v", err)
		}
	})
}

func TestMachine_IllegalTransitions(t *testing.T) {
	cases := []struct {
		name string
		from State
		to   State
	}{
		{"skip a step", StateCreatingClient, StateCreatingBill},
		{"go back", StateCreatingOrder, StateCreatingBill},
		{"stay", StateCreatingBill, StateCreatingBill},
		{"idle to succeeded", StateIdle, StateSucceeded},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := &Machine{state: tc.from}
			if err := m.Advance(tc.to); !errors.Is(err, ErrIllegalTransition) {
				t.Fatalf("expected ErrIllegalTransition, got %v", err)
			}
			if m.State() != tc.from {
				t.Fatalf("state changed to %s", m.State())
			}
		})
	}
}

func TestMachine_FailRecordsStage(t *testing.T) {
	cases := map[State]Stage{
		StateValidatingStock: StageStock,
		StateCreatingClient:  StageClient,
		StateCreatingAddress: StageAddress,
		StateCreatingBill:    StageBill,
		StateCreatingOrder:   StageOrder,
		StateCreatingLines:   StageLineItems,
	}
	for state, want := range cases {
		t.Run(state.String(), func(t *testing.T) {
			var last Transition
			m := &Machine{state: state, observe: func(tr Transition) { last = tr }}

			got, err := m.Fail()
			if err != nil {
				t.Fatalf("fail: %v", err)
			}
			if got != want || m.FailedStage() != want || last.Stage != want {
				t.Fatalf("stage = %q, want %q", got, want)
			}
			if m.State() != StateFailed {
				t.Fatalf("state = %s", m.State())
			}
		})
	}

	t.Run("idle cannot fail", func(t *testing.T) {
		m := NewMachine(nil)
		if _, err := m.Fail(); !errors.Is(err, ErrIllegalTransition) {
			t.Fatalf("expected ErrIllegalTransition, got %v", err)
		}
	})
}
