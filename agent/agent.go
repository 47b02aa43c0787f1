// SPDX-License-Identifier: MIT

// Package agent provides a minimal thread-safe agent whose observable state
// is a set of belief literals and a set of plan literals. It is the entity
// type scored by the consistency CLI and satisfies filter.Observable.
package agent

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/katalvlaran/consistency/filter"
)

// ErrEmptyName indicates that an agent was created without a name.
var ErrEmptyName = errors.New("agent: name is empty")

var _ filter.Observable = (*Agent)(nil)

// Agent is a named entity with a stable identity. Beliefs and plans are sets
// keyed by the literal's canonical form; adding a present literal is a no-op.
//
// Agents are compared by pointer when used as engine entities.
type Agent struct {
	id   uuid.UUID
	name string

	mu      sync.RWMutex
	beliefs map[string]filter.Literal
	plans   map[string]filter.Literal
}

// Option configures an Agent at construction.
type Option func(a *Agent)

// WithID pins the identity instead of drawing a random one.
func WithID(id uuid.UUID) Option {
	return func(a *Agent) { a.id = id }
}

// WithBeliefs seeds the belief base.
func WithBeliefs(lits ...filter.Literal) Option {
	return func(a *Agent) { insert(a.beliefs, lits) }
}

// WithPlans seeds the plan library.
func WithPlans(lits ...filter.Literal) Option {
	return func(a *Agent) { insert(a.plans, lits) }
}

// New creates an agent named name with a random (version 4) identity.
func New(name string, opts ...Option) (*Agent, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	a := &Agent{
		id:      uuid.New(),
		name:    name,
		beliefs: make(map[string]filter.Literal),
		plans:   make(map[string]filter.Literal),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// ID returns the agent identity.
func (a *Agent) ID() uuid.UUID { return a.id }

// Name returns the agent name.
func (a *Agent) Name() string { return a.name }

// String implements fmt.Stringer.
func (a *Agent) String() string { return fmt.Sprintf("%s(%s)", a.name, a.id) }

// AddBeliefs inserts belief literals.
func (a *Agent) AddBeliefs(lits ...filter.Literal) {
	a.mu.Lock()
	defer a.mu.Unlock()
	insert(a.beliefs, lits)
}

// RemoveBeliefs deletes belief literals; absent ones are ignored.
func (a *Agent) RemoveBeliefs(lits ...filter.Literal) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, l := range lits {
		delete(a.beliefs, l.String())
	}
}

// AddPlans inserts plan literals.
func (a *Agent) AddPlans(lits ...filter.Literal) {
	a.mu.Lock()
	defer a.mu.Unlock()
	insert(a.plans, lits)
}

// RemovePlans deletes plan literals; absent ones are ignored.
func (a *Agent) RemovePlans(lits ...filter.Literal) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, l := range lits {
		delete(a.plans, l.String())
	}
}

// Beliefs returns a copy of the belief base ordered by canonical form.
func (a *Agent) Beliefs() []filter.Literal {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return sorted(a.beliefs)
}

// Plans returns a copy of the plan library ordered by canonical form.
func (a *Agent) Plans() []filter.Literal {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return sorted(a.plans)
}

func insert(into map[string]filter.Literal, lits []filter.Literal) {
	for _, l := range lits {
		into[l.String()] = l
	}
}

func sorted(from map[string]filter.Literal) []filter.Literal {
	keys := make([]string, 0, len(from))
	for k := range from {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]filter.Literal, len(keys))
	for i, k := range keys {
		out[i] = from[k]
	}

	return out
}
