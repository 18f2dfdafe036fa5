// Package runid hands out identifiers that tag the log entries of a
// single search engine.
package runid

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

type Provider interface {
	NextID() string
}

var _ Provider = &Counter{}

var counter = &Counter{}

// Process returns a Counter shared by the whole process.
func Process() *Counter {
	return counter
}

// Counter hands out monotonically increasing decimal identifiers.
type Counter struct {
	id int64
}

func (c *Counter) NextID() string {
	return strconv.FormatInt(atomic.AddInt64(&c.id, 1), 10)
}

var _ Provider = &UUID{}

type UUIDFn func() (uuid.UUID, error)

// UUID hands out version 7 UUIDs so that identifiers sort by
// creation time.
type UUID struct {
	next UUIDFn
}

func NewUUID() *UUID {
	return &UUID{next: uuid.NewV7}
}

func NewCustomUUID(next UUIDFn) *UUID {
	return &UUID{next: next}
}

// NextID falls back to the shared Counter when no UUID can be
// generated, so that callers always get a usable identifier.
func (p *UUID) NextID() string {
	id, err := p.next()
	if err != nil {
		return "run-" + counter.NextID()
	}
	return id.String()
}
