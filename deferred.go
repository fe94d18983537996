package richedit

// DeferredQueue holds callbacks that must run once after the next layout
// pass, such as scroll-into-view adjustments that need settled geometry.
// The owning component calls Flush after layout; callbacks run in FIFO
// order. A callback registered during a flush runs on the next flush, not
// the current one. Closing the queue drops pending callbacks, which is
// the teardown path: a deferred callback never fires after its owner is
// gone.
type DeferredQueue struct {
	fns    []func()
	closed bool
}

// Defer registers fn to run on the next Flush and returns a cancel
// function. Cancel is a no-op once fn has run. Defer on a closed queue
// does nothing and returns a no-op cancel.
func (q *DeferredQueue) Defer(fn func()) (cancel func()) {
	if q.closed || fn == nil {
		return func() {}
	}
	q.fns = append(q.fns, fn)
	canceled := false
	wrapped := fn
	idx := len(q.fns) - 1
	q.fns[idx] = func() {
		if canceled {
			return
		}
		wrapped()
	}
	return func() { canceled = true }
}

// Flush runs the callbacks registered before this call, in order.
func (q *DeferredQueue) Flush() {
	if q.closed || len(q.fns) == 0 {
		return
	}
	batch := q.fns
	q.fns = nil
	for _, fn := range batch {
		fn()
	}
}

// Pending returns the number of callbacks waiting for the next flush.
func (q *DeferredQueue) Pending() int {
	return len(q.fns)
}

// Close drops all pending callbacks and rejects new ones.
func (q *DeferredQueue) Close() {
	q.closed = true
	q.fns = nil
}
