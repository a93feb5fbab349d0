package adapter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordermind/logical-permissions-go/pkg/permtree"
)

func TestTypeCallbackAdaptsBoolReturningFunc(t *testing.T) {
	cb, err := TypeCallback(func(value string, ctx permtree.Context) (bool, error) {
		return value == "admin", nil
	})
	require.NoError(t, err)

	granted, err := cb("admin", permtree.Context{})
	require.NoError(t, err)
	assert.True(t, granted)

	granted, err = cb("editor", permtree.Context{})
	require.NoError(t, err)
	assert.False(t, granted)
}

func TestTypeCallbackAdaptsInterfaceReturningFunc(t *testing.T) {
	cb, err := TypeCallback(func(value string, ctx permtree.Context) (interface{}, error) {
		return value == "admin", nil
	})
	require.NoError(t, err)

	granted, err := cb("admin", permtree.Context{})
	require.NoError(t, err)
	assert.True(t, granted)
}

func TestTypeCallbackRejectsNonBoolReturn(t *testing.T) {
	cb, err := TypeCallback(func(value string, ctx permtree.Context) (string, error) {
		return "yes", nil
	})
	require.NoError(t, err, "adapting itself succeeds; the mismatch surfaces at call time")

	_, err = cb("admin", permtree.Context{})
	require.Error(t, err)
	assert.True(t, permtree.IsKind(err, permtree.InvalidCallbackReturnType))
}

func TestTypeCallbackPropagatesUnderlyingError(t *testing.T) {
	sentinel := errors.New("boom")
	cb, err := TypeCallback(func(value string, ctx permtree.Context) (bool, error) {
		return false, sentinel
	})
	require.NoError(t, err)

	_, err = cb("admin", permtree.Context{})
	assert.Same(t, sentinel, err)
}

func TestTypeCallbackRejectsWrongShape(t *testing.T) {
	_, err := TypeCallback(func(int) bool { return true })
	require.Error(t, err)
	assert.True(t, permtree.IsKind(err, permtree.InvalidArgumentType))

	_, err = TypeCallback("not a function")
	require.Error(t, err)
	assert.True(t, permtree.IsKind(err, permtree.InvalidArgumentType))
}

func TestBypassCallbackAdapts(t *testing.T) {
	cb, err := BypassCallback(func(ctx permtree.Context) (bool, error) {
		su, _ := ctx["superuser"].(bool)
		return su, nil
	})
	require.NoError(t, err)

	granted, err := cb(permtree.Context{"superuser": true})
	require.NoError(t, err)
	assert.True(t, granted)
}

func TestBypassCallbackRejectsNonBoolReturn(t *testing.T) {
	cb, err := BypassCallback(func(ctx permtree.Context) (int, error) {
		return 1, nil
	})
	require.NoError(t, err)

	_, err = cb(permtree.Context{})
	require.Error(t, err)
	assert.True(t, permtree.IsKind(err, permtree.InvalidCallbackReturnType))
}
