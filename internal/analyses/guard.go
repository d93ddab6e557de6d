package analyses

import "sync/atomic"

// Guard is the presentation layer's "processing" flag. At most one analysis
// holds it at a time; the pipeline itself never consults it.
type Guard struct {
	busy atomic.Bool
}

// Acquire sets the flag. The returned release func clears it and is safe to
// call more than once.
func (g *Guard) Acquire() (release func(), err error) {
	if !g.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	var once atomic.Bool
	return func() {
		if once.CompareAndSwap(false, true) {
			g.busy.Store(false)
		}
	}, nil
}

// Busy reports whether an analysis currently holds the flag.
func (g *Guard) Busy() bool {
	return g.busy.Load()
}
