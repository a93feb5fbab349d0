package permtree

import (
	"math"
	"strconv"
	"sync"
)

// TypeRegistry stores name->Callback associations for user-registered
// permission types, safe for concurrent reads during evaluation versus
// writes from registry setters.
type TypeRegistry struct {
	mu    sync.RWMutex
	types map[string]Callback
}

// NewTypeRegistry returns an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{types: make(map[string]Callback)}
}

// Add registers cb under name. Fails if name is empty, reserved, already
// registered, or cb is nil (I2).
func (r *TypeRegistry) Add(name string, cb Callback) error {
	if err := validateTypeName(name); err != nil {
		return err
	}
	if cb == nil {
		return newError(MissingArgument, path{}, nil, "callback for permission type %q must not be nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[name]; exists {
		return newError(PermissionTypeAlreadyExists, path{}, name, "permission type %q is already registered", name)
	}
	r.types[name] = cb
	return nil
}

// Remove unregisters name. Fails if absent.
func (r *TypeRegistry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[name]; !exists {
		return newError(PermissionTypeNotRegistered, path{}, name, "permission type %q is not registered", name)
	}
	delete(r.types, name)
	return nil
}

// Exists reports whether name is currently registered.
func (r *TypeRegistry) Exists(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.types[name]
	return ok
}

// Get returns the callback for name. Fails if absent.
func (r *TypeRegistry) Get(name string) (Callback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cb, ok := r.types[name]
	if !ok {
		return nil, newError(PermissionTypeNotRegistered, path{}, name, "permission type %q is not registered", name)
	}
	return cb, nil
}

// Replace swaps the callback for an already-registered name. Fails if
// absent or cb is nil.
func (r *TypeRegistry) Replace(name string, cb Callback) error {
	if cb == nil {
		return newError(MissingArgument, path{}, nil, "replacement callback for permission type %q must not be nil", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[name]; !exists {
		return newError(PermissionTypeNotRegistered, path{}, name, "permission type %q is not registered", name)
	}
	r.types[name] = cb
	return nil
}

// SetAll atomically replaces the whole registry. It validates every key
// and value before mutating anything (no partial application on error),
// rejecting empty, reserved, or numeric-looking keys and nil callbacks.
func (r *TypeRegistry) SetAll(types map[string]Callback) error {
	for name, cb := range types {
		if err := validateTypeName(name); err != nil {
			return err
		}
		if isNumericLooking(name) {
			return newError(InvalidArgumentValue, path{}, name, "permission type name %q looks numeric", name)
		}
		if cb == nil {
			return newError(MissingArgument, path{}, nil, "callback for permission type %q must not be nil", name)
		}
	}

	replacement := make(map[string]Callback, len(types))
	for name, cb := range types {
		replacement[name] = cb
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = replacement
	return nil
}

// GetAll returns a shallow copy of the registered name->Callback map.
func (r *TypeRegistry) GetAll() map[string]Callback {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Callback, len(r.types))
	for k, v := range r.types {
		out[k] = v
	}
	return out
}

// ValidKeys returns the union of reserved grammar keywords and currently
// registered type names.
func (r *TypeRegistry) ValidKeys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(reservedKeys)+len(r.types))
	for k := range reservedKeys {
		keys = append(keys, k)
	}
	for k := range r.types {
		keys = append(keys, k)
	}
	return keys
}

func validateTypeName(name string) error {
	if name == "" {
		return newError(InvalidArgumentValue, path{}, name, "permission type name must not be empty")
	}
	if isReservedKey(name) {
		return newError(InvalidArgumentValue, path{}, name, "permission type name %q is a reserved keyword", name)
	}
	return nil
}

// isNumericLooking reports whether name parses as a finite number. Such
// names are rejected by SetAll (but not Add/Replace) since a map with
// numeric string keys is indistinguishable from an array in many hosts.
func isNumericLooking(name string) bool {
	f, err := strconv.ParseFloat(name, 64)
	return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
}
