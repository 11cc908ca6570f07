package supervisor

import (
	"sync"

	"font-helper/core/fault"
)

// faultBox collects faults escalated by request workers during one serving
// cycle. It keeps the worst one seen so a fatal fault is never replaced by a
// later disconnect.
type faultBox struct {
	classifier *fault.Classifier

	mu      sync.Mutex
	pending *fault.Fault
	fatal   bool
	notify  chan struct{}
}

func newFaultBox(c *fault.Classifier) *faultBox {
	return &faultBox{classifier: c, notify: make(chan struct{}, 1)}
}

// put is called from worker goroutines and never blocks.
func (b *faultBox) put(f *fault.Fault) {
	fatal := b.classifier.Classify(f).Kind == fault.Fatal

	b.mu.Lock()
	if b.pending == nil || (fatal && !b.fatal) {
		b.pending = f
		b.fatal = fatal
	}
	b.mu.Unlock()

	select {
	case b.notify <- struct{}{}:
	default:
	}
}

// take returns the worst pending fault, or nil.
func (b *faultBox) take() *fault.Fault {
	b.mu.Lock()
	defer b.mu.Unlock()
	f := b.pending
	b.pending, b.fatal = nil, false
	return f
}

// worse returns whichever of a and b should decide the supervisor's next step.
func worse(c *fault.Classifier, a, b *fault.Fault) *fault.Fault {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if c.Classify(a).Kind == fault.ClientDisconnect && c.Classify(b).Kind == fault.Fatal {
		return b
	}
	return a
}
