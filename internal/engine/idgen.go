package engine

import (
	"sync/atomic"

	"nft_market/internal/domain"
)

// CounterAllocator is the default IDAllocator: a plain monotonic counter
// carried as explicit state so tests can pin id assignment.
type CounterAllocator struct {
	next domain.GlobalID
}

// NewCounterAllocator starts allocation at the given id.
func NewCounterAllocator(start domain.GlobalID) *CounterAllocator {
	return &CounterAllocator{next: start}
}

// Next returns the current id and advances the counter.
func (a *CounterAllocator) Next() domain.GlobalID {
	id := a.next
	a.next++
	return id
}

// StepClock is a manually advanced Clock. The replicated host advances it
// once per block; tests set it directly. Atomic because the HTTP surface may
// advance it while an operation reads it.
type StepClock struct {
	step atomic.Uint64
}

// NewStepClock starts at the given step.
func NewStepClock(start uint64) *StepClock {
	c := &StepClock{}
	c.step.Store(start)
	return c
}

// Current returns the current step.
func (c *StepClock) Current() uint64 {
	return c.step.Load()
}

// Advance moves the clock forward by n steps.
func (c *StepClock) Advance(n uint64) {
	c.step.Add(n)
}

// Set jumps the clock to an absolute step.
func (c *StepClock) Set(step uint64) {
	c.step.Store(step)
}
