// Package idgen provides run identifier generators.
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/artpar/reacthub/ports"
	"github.com/google/uuid"
)

// Short returns the first block of a new UUID, for log correlation.
type Short struct{}

// New returns eight hex characters.
func (Short) New() string {
	return uuid.New().String()[:8]
}

// Sequential yields prefix1, prefix2, ...
type Sequential struct {
	prefix  string
	counter atomic.Uint64
}

// NewSequential creates a sequential generator.
func NewSequential(prefix string) *Sequential {
	return &Sequential{prefix: prefix}
}

// New returns the next identifier.
func (s *Sequential) New() string {
	return s.prefix + strconv.FormatUint(s.counter.Add(1), 10)
}

var (
	_ ports.IDGenerator = Short{}
	_ ports.IDGenerator = (*Sequential)(nil)
)
