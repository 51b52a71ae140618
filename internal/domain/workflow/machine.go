package workflow

import (
	"context"
	"fmt"
)

// GuardFunc decides whether a configured transition may fire.
type GuardFunc func(ctx context.Context) bool

// Machine tracks the current lifecycle state and validates transitions
// against a fixed transition table.
type Machine interface {
	// State returns the current state.
	State() State

	// CanFire reports whether the trigger has any configured transition
	// out of the current state.
	CanFire(trigger Trigger) bool

	// Fire executes the trigger, moving to the configured target state.
	// It returns ErrInvalidTransition when the trigger is not permitted in
	// the current state and ErrGuardFailed when all guards reject it.
	Fire(ctx context.Context, trigger Trigger) error

	// Peek returns the state Fire would land in without mutating the
	// machine. It fails with the same errors as Fire.
	Peek(ctx context.Context, trigger Trigger) (State, error)

	// PermittedTriggers lists the triggers configured for the current state.
	PermittedTriggers() []Trigger
}

// Builder assembles the transition table for a Machine.
type Builder struct {
	table map[State]map[Trigger][]transition
}

type transition struct {
	to    State
	guard GuardFunc
}

// StateConfig configures the outgoing transitions of one state.
type StateConfig struct {
	builder *Builder
	from    State
}

// NewBuilder creates an empty transition-table builder.
func NewBuilder() *Builder {
	return &Builder{table: make(map[State]map[Trigger][]transition)}
}

// Configure returns the configuration handle for the given state.
func (b *Builder) Configure(state State) StateConfig {
	if !state.IsValid() {
		panic(fmt.Sprintf("workflow: configuring invalid state %q", state))
	}
	if _, ok := b.table[state]; !ok {
		b.table[state] = make(map[Trigger][]transition)
	}
	return StateConfig{builder: b, from: state}
}

// Permit allows trigger to move from this state to the target state.
func (c StateConfig) Permit(trigger Trigger, to State) StateConfig {
	return c.PermitIf(trigger, to, nil)
}

// PermitIf allows the transition only when guard passes at fire time.
func (c StateConfig) PermitIf(trigger Trigger, to State, guard GuardFunc) StateConfig {
	if !to.IsValid() {
		panic(fmt.Sprintf("workflow: permitting invalid target state %q", to))
	}
	c.builder.table[c.from][trigger] = append(c.builder.table[c.from][trigger], transition{to: to, guard: guard})
	return c
}

// Build creates a machine positioned at the given initial state. The
// transition table is copied so the builder can be reused safely.
func (b *Builder) Build(initial State) Machine {
	if !initial.IsValid() {
		panic(fmt.Sprintf("workflow: building with invalid initial state %q", initial))
	}

	table := make(map[State]map[Trigger][]transition, len(b.table))
	for state, triggers := range b.table {
		rows := make(map[Trigger][]transition, len(triggers))
		for trg, ts := range triggers {
			rows[trg] = append([]transition(nil), ts...)
		}
		table[state] = rows
	}

	return &machine{current: initial, table: table}
}

type machine struct {
	current State
	table   map[State]map[Trigger][]transition
}

func (m *machine) State() State {
	return m.current
}

func (m *machine) CanFire(trigger Trigger) bool {
	return len(m.table[m.current][trigger]) > 0
}

func (m *machine) Fire(ctx context.Context, trigger Trigger) error {
	next, err := m.Peek(ctx, trigger)
	if err != nil {
		return err
	}
	m.current = next
	return nil
}

func (m *machine) Peek(ctx context.Context, trigger Trigger) (State, error) {
	ts := m.table[m.current][trigger]
	if len(ts) == 0 {
		return "", fmt.Errorf("%w: trigger %s from state %s", ErrInvalidTransition, trigger, m.current)
	}

	for _, t := range ts {
		if t.guard == nil || t.guard(ctx) {
			return t.to, nil
		}
	}
	return "", fmt.Errorf("%w: trigger %s from state %s", ErrGuardFailed, trigger, m.current)
}

func (m *machine) PermittedTriggers() []Trigger {
	rows := m.table[m.current]
	triggers := make([]Trigger, 0, len(rows))
	for trg := range rows {
		triggers = append(triggers, trg)
	}
	return triggers
}
