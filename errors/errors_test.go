package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/miniql/miniql/errors"
)

func TestErrorMessage(t *testing.T) {
	err := errors.New("field %q not found", "x")
	require.Equal(t, `graphql: field "x" not found`, err.Error())
}

func TestWrapKeepsCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := errors.Wrap(cause, "resolver error for field %q", "user")
	require.Contains(t, err.Error(), "resolver error")
	require.Contains(t, err.Error(), "connection refused")
	require.True(t, stderrors.Is(err, cause))
}

func TestSerializeWireShape(t *testing.T) {
	err := errors.New("boom").WithExtensions(map[string]any{"code": "INTERNAL"})

	out := err.Serialize(false)
	require.Equal(t, "boom", out["message"])
	require.Equal(t, map[string]any{"code": "INTERNAL"}, out["extensions"])
	_, hasDebug := out["debug"]
	require.False(t, hasDebug)
}

func TestSerializeOmitsEmptyExtensions(t *testing.T) {
	out := errors.New("plain").Serialize(false)
	_, ok := out["extensions"]
	require.False(t, ok)
}

func TestSerializeDebugBlock(t *testing.T) {
	err := errors.New("boom")
	out := err.Serialize(true)

	dbg, ok := out["debug"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, dbg["file"].(string), "errors_test.go")
	require.Greater(t, dbg["line"].(int), 0)
	require.NotEmpty(t, dbg["stack"])
}

func TestNilError(t *testing.T) {
	var err *errors.QueryError
	require.Equal(t, "<nil>", err.Error())
}
