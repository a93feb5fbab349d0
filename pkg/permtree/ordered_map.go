package permtree

// OrderedMap is an insertion-ordered string-to-Node map. Go's built-in map
// type randomizes iteration order, but a tree's Map nodes must evaluate
// their entries in the order the caller built them (this matters for
// short-circuiting side-effecting callbacks), so every Map node in the
// tree carries one of these instead of a bare map[string]Node.
type OrderedMap struct {
	keys   []string
	values map[string]Node
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: make(map[string]Node)}
}

// Set inserts or updates the value for key, preserving the position of an
// existing key and appending new keys in call order.
func (m *OrderedMap) Set(key string, value Node) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the node for key and whether it was present.
func (m *OrderedMap) Get(key string) (Node, bool) {
	if m == nil {
		return Node{}, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Delete removes key, if present.
func (m *OrderedMap) Delete(key string) {
	if m == nil {
		return
	}
	if _, exists := m.values[key]; !exists {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (m *OrderedMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order. The returned slice must not be
// mutated by the caller.
func (m *OrderedMap) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Each calls fn for every entry in insertion order, stopping early if fn
// returns false.
func (m *OrderedMap) Each(fn func(key string, value Node) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// Clone returns a deep copy of m.
func (m *OrderedMap) Clone() *OrderedMap {
	if m == nil {
		return NewOrderedMap()
	}
	out := &OrderedMap{
		keys:   append([]string(nil), m.keys...),
		values: make(map[string]Node, len(m.values)),
	}
	for k, v := range m.values {
		out.values[k] = cloneNode(v)
	}
	return out
}

// Equal reports whether m and other contain the same keys mapped to
// deep-equal nodes, regardless of insertion order (used by non-mutation
// property tests, where order is not semantically significant for
// equality even though it is for evaluation side effects).
func (m *OrderedMap) Equal(other *OrderedMap) bool {
	if m.Len() != other.Len() {
		return false
	}
	equal := true
	m.Each(func(k string, v Node) bool {
		ov, ok := other.Get(k)
		if !ok || !nodesEqual(v, ov) {
			equal = false
			return false
		}
		return true
	})
	return equal
}
