package permtree

import (
	"fmt"

	"github.com/starkandwayne/goutils/ansi"
)

// Kind discriminates the taxonomy of errors this package raises.
type Kind string

const (
	// MissingArgument means a required parameter was omitted.
	MissingArgument Kind = "missing_argument"
	// InvalidArgumentType means a parameter had the wrong structural kind
	// (e.g. a permission tree that isn't Bool/Str/List/Map).
	InvalidArgumentType Kind = "invalid_argument_type"
	// InvalidArgumentValue means a parameter was structurally correct but
	// semantically illegal: an empty or reserved type name, a misplaced
	// NO_BYPASS, a boolean leaf under an active type, a nested type, or a
	// malformed NO_BYPASS payload.
	InvalidArgumentValue Kind = "invalid_argument_value"
	// PermissionTypeAlreadyExists means Add was called for a name already
	// present in the registry.
	PermissionTypeAlreadyExists Kind = "permission_type_already_exists"
	// PermissionTypeNotRegistered means a lookup (Remove/Get/Replace, or a
	// dispatch reaching an unregistered type name) found nothing.
	PermissionTypeNotRegistered Kind = "permission_type_not_registered"
	// InvalidValueForLogicGate means a gate's value had the wrong shape or
	// too few/many elements (e.g. XOR with fewer than two children).
	InvalidValueForLogicGate Kind = "invalid_value_for_logic_gate"
	// InvalidCallbackReturnType means a callback reached through the
	// reflective adapter (internal/adapter) returned a non-bool.
	InvalidCallbackReturnType Kind = "invalid_callback_return_type"
)

// Error is the single error type this package raises. A type switch on a
// bare error is never required; callers branch on Kind.
type Error struct {
	Kind    Kind
	Message string
	Path    string
	Value   interface{}
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Value != nil {
		msg = fmt.Sprintf("%s (got %#v)", msg, e.Value)
	}
	if e.Path != "" {
		return ansi.Sprintf("@R{%s} @c{at %s}: %s", e.Kind, e.Path, msg)
	}
	return ansi.Sprintf("@R{%s}: %s", e.Kind, msg)
}

// Unwrap exposes the underlying cause, if any, for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(kind Kind, p path, value interface{}, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Path:    p.String(),
		Value:   value,
	}
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	pe, ok := err.(*Error)
	return ok && pe.Kind == kind
}
