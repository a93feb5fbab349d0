// Package adapter lets a host register a permission-type or bypass
// callback whose concrete Go signature is only known at runtime (for
// instance one loaded from a scripting layer or a plugin boundary), in
// place of the core's statically-typed permtree.Callback/BypassCallback
// function types.
//
// A dynamically-typed result needs a single, type-safe place to be coerced
// from. Here the coercion target is always bool, since that is the only shape
// permtree.Callback and permtree.BypassCallback accept.
package adapter

import (
	"reflect"

	"github.com/ordermind/logical-permissions-go/pkg/permtree"
)

// TypeCallback adapts fn, a function of the shape
// func(string, permtree.Context) (RETURN, error) for any RETURN reflect
// can coerce to bool, into a permtree.Callback. fn must be a func value
// accepting exactly (string, permtree.Context) and returning exactly two
// results, the second assignable to error.
func TypeCallback(fn interface{}) (permtree.Callback, error) {
	rv, rt, err := checkCallbackShape(fn)
	if err != nil {
		return nil, err
	}
	return func(value string, ctx permtree.Context) (bool, error) {
		out := rv.Call([]reflect.Value{reflect.ValueOf(value), reflect.ValueOf(ctx)})
		return coerceResult(rt, out)
	}, nil
}

// BypassCallback adapts fn, a function of the shape
// func(permtree.Context) (RETURN, error), into a permtree.BypassCallback.
func BypassCallback(fn interface{}) (permtree.BypassCallback, error) {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func {
		return nil, newAdaptErr(fn, "not a function")
	}
	rt := rv.Type()
	if rt.NumIn() != 1 || rt.NumOut() != 2 {
		return nil, newAdaptErr(fn, "expected func(permtree.Context) (RETURN, error)")
	}
	if !rt.In(0).ConvertibleTo(reflect.TypeOf(permtree.Context{})) {
		return nil, newAdaptErr(fn, "first parameter must accept permtree.Context")
	}
	if !rt.Out(1).Implements(errorType) {
		return nil, newAdaptErr(fn, "second return value must be error")
	}
	return func(ctx permtree.Context) (bool, error) {
		out := rv.Call([]reflect.Value{reflect.ValueOf(ctx)})
		return coerceResult(rt, out)
	}, nil
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func checkCallbackShape(fn interface{}) (reflect.Value, reflect.Type, error) {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func {
		return reflect.Value{}, nil, newAdaptErr(fn, "not a function")
	}
	rt := rv.Type()
	if rt.NumIn() != 2 || rt.NumOut() != 2 {
		return reflect.Value{}, nil, newAdaptErr(fn, "expected func(string, permtree.Context) (RETURN, error)")
	}
	if rt.In(0).Kind() != reflect.String {
		return reflect.Value{}, nil, newAdaptErr(fn, "first parameter must be a string")
	}
	if !rt.In(1).ConvertibleTo(reflect.TypeOf(permtree.Context{})) {
		return reflect.Value{}, nil, newAdaptErr(fn, "second parameter must accept permtree.Context")
	}
	if !rt.Out(1).Implements(errorType) {
		return reflect.Value{}, nil, newAdaptErr(fn, "second return value must be error")
	}
	return rv, rt, nil
}

// coerceResult extracts the call's (RETURN, error) results and coerces
// RETURN to bool. A non-nil error short-circuits: the RETURN value is not
// inspected. This is the one reachable site in the system for
// permtree.InvalidCallbackReturnType.
func coerceResult(rt reflect.Type, out []reflect.Value) (bool, error) {
	if errVal := out[1].Interface(); errVal != nil {
		return false, errVal.(error)
	}

	result := out[0]
	switch result.Kind() {
	case reflect.Bool:
		return result.Bool(), nil
	case reflect.Interface:
		if b, ok := result.Interface().(bool); ok {
			return b, nil
		}
	}
	return false, invalidReturnTypeError(rt, result)
}

func invalidReturnTypeError(rt reflect.Type, result reflect.Value) *permtree.Error {
	return &permtree.Error{
		Kind:    permtree.InvalidCallbackReturnType,
		Message: "adapted callback must return a bool",
		Value:   result.Interface(),
	}
}

func newAdaptErr(fn interface{}, reason string) *permtree.Error {
	return &permtree.Error{
		Kind:    permtree.InvalidArgumentType,
		Message: "cannot adapt callback: " + reason,
		Value:   reflect.TypeOf(fn),
	}
}
