package story

import (
	"errors"
	"sync"
)

// Rotation cycles through a fixed pool of generation service endpoints.
// The index is shared across concurrent requests, so access is guarded.
type Rotation struct {
	mu        sync.Mutex
	endpoints []string
	index     int
}

// NewRotation creates a rotation over the given endpoint pool.
func NewRotation(endpoints []string) (*Rotation, error) {
	if len(endpoints) == 0 {
		return nil, errors.New("at least one endpoint is required")
	}
	return &Rotation{endpoints: append([]string(nil), endpoints...)}, nil
}

// Current returns the endpoint the rotation currently points at.
func (r *Rotation) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.endpoints[r.index]
}

// Advance moves to the next endpoint, wrapping at the end of the pool,
// and returns it.
func (r *Rotation) Advance() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.index = (r.index + 1) % len(r.endpoints)
	return r.endpoints[r.index]
}

// Size returns the number of endpoints in the pool.
func (r *Rotation) Size() int {
	return len(r.endpoints)
}
