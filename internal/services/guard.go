package services

import (
	"fmt"
	"sync"
)

// Guard serializes access to a single store. A panic raised inside the
// critical section is converted into an ErrConcurrency error for that call;
// the mutex is always released, so later callers are unaffected.
type Guard struct {
	mu   sync.Mutex
	name string
}

// NewGuard returns a guard labelled with the owning component name.
func NewGuard(name string) *Guard {
	return &Guard{name: name}
}

// Do runs fn while holding the guard.
func (g *Guard) Do(operation string, fn func() error) (err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			err = Wrap(ErrConcurrency, g.name, operation, fmt.Sprintf("store access aborted: %v", r), nil)
		}
	}()
	return fn()
}
