package pass

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// seqCounter numbers render passes within the process
var seqCounter uint64

// Pass identifies a single group-and-render invocation.
// Grouping results never outlive the pass that produced them.
type Pass struct {
	ID        string    // Unique pass identifier (UUID) used for log correlation
	Seq       uint64    // Monotonic pass number within this process
	StartTime time.Time // When the pass began
}

// New starts a new pass with a unique ID
func New() *Pass {
	return &Pass{
		ID:        uuid.New().String(),
		Seq:       atomic.AddUint64(&seqCounter, 1),
		StartTime: time.Now(),
	}
}

// Elapsed returns the time since the pass began
func (p *Pass) Elapsed() time.Duration {
	return time.Since(p.StartTime)
}
