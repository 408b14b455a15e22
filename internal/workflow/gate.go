package workflow

// Gate bounds the number of jobs processing concurrently. Acquisition never
// blocks: callers either get a slot immediately or are told to reject the
// work.
type Gate struct {
	slots chan struct{}
}

// NewGate creates a gate with the given capacity. Capacities below one are
// raised to one.
func NewGate(capacity int) *Gate {
	if capacity < 1 {
		capacity = 1
	}
	return &Gate{slots: make(chan struct{}, capacity)}
}

// TryAcquire claims a slot without blocking. It reports whether a slot was
// granted.
func (g *Gate) TryAcquire() bool {
	select {
	case g.slots <- struct{}{}:
		return true
	default:
		return false
	}
}

// Release returns a slot. Releasing with no slot held is a no-op, so a
// misplaced extra call never corrupts the count.
func (g *Gate) Release() {
	select {
	case <-g.slots:
	default:
	}
}

// Capacity reports the configured slot count.
func (g *Gate) Capacity() int {
	return cap(g.slots)
}

// InFlight reports how many slots are currently held.
func (g *Gate) InFlight() int {
	return len(g.slots)
}
