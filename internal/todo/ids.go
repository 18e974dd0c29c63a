package todo

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator hands out record ids. Implementations must be safe for
// concurrent use and never repeat a value within a process.
type IDGenerator interface {
	NewID() string
}

// UUIDs generates random v4 UUIDs.
type UUIDs struct{}

func (UUIDs) NewID() string { return uuid.NewString() }

// Sequence generates increasing decimal ids starting after Start.
type Sequence struct {
	n atomic.Uint64
}

// NewSequence returns a Sequence whose first id is start+1.
func NewSequence(start uint64) *Sequence {
	s := &Sequence{}
	s.n.Store(start)
	return s
}

func (s *Sequence) NewID() string {
	return strconv.FormatUint(s.n.Add(1), 10)
}

// NewIDGenerator maps a strategy name to a generator. Unknown names fall back
// to UUIDs. seedCount keeps sequence ids clear of the seeded records.
func NewIDGenerator(strategy string, seedCount int) IDGenerator {
	switch strategy {
	case "sequence":
		return NewSequence(uint64(seedCount))
	default:
		return UUIDs{}
	}
}
