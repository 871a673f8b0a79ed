package executor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type account struct {
	Name   string
	Email  string
	secret string
}

func (a account) Display() string { return a.Name + " <" + a.Email + ">" }

type capSource struct{ values map[string]any }

func (c capSource) QueryField(name string) (any, bool) {
	v, ok := c.values[name]
	return v, ok
}

func TestDefaultResolveMap(t *testing.T) {
	src := map[string]any{"name": "Alice"}
	require.Equal(t, "Alice", defaultResolve(src, "name"))
	require.Nil(t, defaultResolve(src, "missing"))
}

func TestDefaultResolveTypedMap(t *testing.T) {
	src := map[string]int{"count": 3}
	require.Equal(t, 3, defaultResolve(src, "count"))
	require.Nil(t, defaultResolve(src, "missing"))
}

func TestDefaultResolveStructField(t *testing.T) {
	src := account{Name: "Alice", Email: "a@example.com", secret: "x"}
	require.Equal(t, "Alice", defaultResolve(src, "Name"))
	// Case-insensitive fallback matches query-style lowercase names.
	require.Equal(t, "a@example.com", defaultResolve(src, "email"))
	// Unexported fields are invisible.
	require.Nil(t, defaultResolve(src, "secret"))
}

func TestDefaultResolveStructPointer(t *testing.T) {
	src := &account{Name: "Bob"}
	require.Equal(t, "Bob", defaultResolve(src, "name"))
}

func TestDefaultResolveAccessorMethod(t *testing.T) {
	src := account{Name: "Alice", Email: "a@example.com"}
	require.Equal(t, "Alice <a@example.com>", defaultResolve(src, "display"))
}

func TestDefaultResolveFieldSource(t *testing.T) {
	src := capSource{values: map[string]any{"id": 7}}
	require.Equal(t, 7, defaultResolve(src, "id"))
	// A FieldSource is authoritative: no fallback past a miss.
	require.Nil(t, defaultResolve(src, "values"))
}

func TestDefaultResolveNilAndUnknown(t *testing.T) {
	require.Nil(t, defaultResolve(nil, "x"))
	require.Nil(t, defaultResolve(42, "x"))
	var p *account
	require.Nil(t, defaultResolve(p, "Name"))
}
