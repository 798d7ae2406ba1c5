package domain

import "fmt"

// State is a checkout's position in the saga. A checkout only ever moves to
// the next state or to Failed.
type State int

const (
	StateIdle State = iota
	StateValidatingStock
	StateCreatingClient
	StateCreatingAddress
	StateCreatingBill
	StateCreatingOrder
	StateCreatingLines
	StateSucceeded
	StateFailed
)

var stateNames = [...]string{
	StateIdle:            "idle",
	StateValidatingStock: "validating-stock",
	StateCreatingClient:  "creating-client",
	StateCreatingAddress: "creating-address",
	StateCreatingBill:    "creating-bill",
	StateCreatingOrder:   "creating-order",
	StateCreatingLines:   "creating-lines",
	StateSucceeded:       "succeeded",
	StateFailed:          "failed",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) Terminal() bool { return s == StateSucceeded || s == StateFailed }

var stateStages = map[State]Stage{
	StateValidatingStock: StageStock,
	StateCreatingClient:  StageClient,
	StateCreatingAddress: StageAddress,
	StateCreatingBill:    StageBill,
	StateCreatingOrder:   StageOrder,
	StateCreatingLines:   StageLineItems,
}

// Stage returns the step a working state performs, or "" for idle and terminal states.
func (s State) Stage() Stage { return stateStages[s] }

type Transition struct {
	From  State
	To    State
	Stage Stage // set when To is StateFailed
}

type Machine struct {
	state       State
	failedStage Stage
	observe     func(Transition)
}

// NewMachine starts in Idle. observe, if not nil, sees every transition.
func NewMachine(observe func(Transition)) *Machine {
	return &Machine{observe: observe}
}

func (m *Machine) State() State { return m.state }

// FailedStage is the stage that failed, once the machine is in StateFailed.
func (m *Machine) FailedStage() Stage { return m.failedStage }

// Advance moves to to, which must be the state right after the current one.
func (m *Machine) Advance(to State) error {
	if m.state.Terminal() || to != m.state+1 || to == StateFailed {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, m.state, to)
	}
	m.move(Transition{From: m.state, To: to})
	return nil
}

// Fail moves a working state to Failed and records its stage.
func (m *Machine) Fail() (Stage, error) {
	stage := m.state.Stage()
	if stage == "" {
		return "", fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, m.state, StateFailed)
	}
	m.failedStage = stage
	m.move(Transition{From: m.state, To: StateFailed, Stage: stage})
	return stage, nil
}

func (m *Machine) move(t Transition) {
	m.state = t.To
	if m.observe != nil {
		m.observe(t)
	}
}
