package idgen

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Record ID prefixes, one per collection that allocates IDs.
const (
	PrefixPatient     = "PAT"
	PrefixRequest     = "REQ"
	PrefixAppointment = "APT"
	PrefixSlot        = "SLOT"
)

// Generator allocates record identifiers. It is injected into every
// service so tests can substitute a deterministic implementation.
type Generator interface {
	Next(prefix string) string
}

type timestampGenerator struct {
	mu   sync.Mutex
	rand *rand.Rand
	now  func() time.Time
}

// NewTimestamp returns the production generator. IDs have the form
// <PREFIX><unix-millis><0-999>, e.g. PAT1717230000000421. The random
// suffix keeps same-millisecond allocations apart; collisions remain
// theoretically possible, which is why the scheme sits behind Generator.
func NewTimestamp() Generator {
	return &timestampGenerator{
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
		now:  time.Now,
	}
}

func (g *timestampGenerator) Next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fmt.Sprintf("%s%d%d", prefix, g.now().UnixMilli(), g.rand.Intn(1000))
}

type sequentialGenerator struct {
	mu   sync.Mutex
	next map[string]int
}

// NewSequential returns a generator producing PREFIX1, PREFIX2, ... per
// prefix. Test use only.
func NewSequential() Generator {
	return &sequentialGenerator{next: make(map[string]int)}
}

func (g *sequentialGenerator) Next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next[prefix]++
	return fmt.Sprintf("%s%d", prefix, g.next[prefix])
}
