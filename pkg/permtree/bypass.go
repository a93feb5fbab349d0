package permtree

import "sync"

// BypassEvaluator holds the optional global bypass predicate. Grounded on
// the same reader/writer discipline as TypeRegistry: Set mutates, Get and
// Invoke only read, guarded by an RWMutex so CheckAccess never races a
// concurrent Set.
type BypassEvaluator struct {
	mu sync.RWMutex
	cb BypassCallback
}

// NewBypassEvaluator returns a BypassEvaluator with no predicate set.
func NewBypassEvaluator() *BypassEvaluator {
	return &BypassEvaluator{}
}

// Set installs cb as the bypass predicate. Fails if cb is nil.
func (b *BypassEvaluator) Set(cb BypassCallback) error {
	if cb == nil {
		return newError(MissingArgument, path{}, nil, "bypass callback must not be nil")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cb = cb
	return nil
}

// Get returns the current predicate, or nil if unset.
func (b *BypassEvaluator) Get() BypassCallback {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cb
}

// Invoke calls the predicate with ctx. If no predicate is set, it returns
// false, nil: the absence of a bypass callback is not an error, it simply
// means bypass never grants.
func (b *BypassEvaluator) Invoke(ctx Context) (bool, error) {
	b.mu.RLock()
	cb := b.cb
	b.mu.RUnlock()

	if cb == nil {
		return false, nil
	}
	return cb(ctx)
}
