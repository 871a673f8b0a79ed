package schema_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/miniql/miniql/schema"
)

func TestNewSchemaRootKindChecks(t *testing.T) {
	query := schema.NewObject("Query", &schema.Field{Name: "hello", Type: schema.String})

	t.Run("nil query", func(t *testing.T) {
		_, err := schema.New(nil, nil)
		require.Error(t, err)
	})
	t.Run("non-object query", func(t *testing.T) {
		_, err := schema.New(schema.String, nil)
		require.Error(t, err)
		require.Contains(t, err.Error(), "query type must be an object type")
	})
	t.Run("non-object mutation", func(t *testing.T) {
		_, err := schema.New(query, schema.NewList(query))
		require.Error(t, err)
		require.Contains(t, err.Error(), "mutation type must be an object type")
	})
	t.Run("mutation optional", func(t *testing.T) {
		s, err := schema.New(query, nil)
		require.NoError(t, err)
		require.Nil(t, s.MutationType())
		require.Same(t, query, s.QueryType())
	})
}

func TestSchemaPreRegistersBuiltins(t *testing.T) {
	query := schema.NewObject("Query", &schema.Field{Name: "hello", Type: schema.String})
	s, err := schema.New(query, nil)
	require.NoError(t, err)

	for _, name := range []string{"String", "Int", "Float", "Boolean", "ID"} {
		typ, ok := s.Type(name)
		require.True(t, ok, "builtin %s not registered", name)
		require.Equal(t, schema.KindScalar, typ.Kind)
	}
}

func TestSchemaRegistrationWalk(t *testing.T) {
	profile := schema.NewObject("Profile", &schema.Field{Name: "bio", Type: schema.String})
	user := schema.NewObject("User",
		&schema.Field{Name: "id", Type: schema.NewNonNull(schema.ID)},
		&schema.Field{Name: "profile", Type: profile},
		&schema.Field{Name: "tags", Type: schema.NewList(schema.NewScalar("Tag"))},
	)
	// Self-referential field: the walk must terminate.
	user.AddField(&schema.Field{Name: "bestFriend", Type: user})

	query := schema.NewObject("Query", &schema.Field{Name: "user", Type: user})
	s, err := schema.New(query, nil)
	require.NoError(t, err)

	for _, name := range []string{"Query", "User", "Profile", "Tag"} {
		_, ok := s.Type(name)
		require.True(t, ok, "type %s not reachable", name)
	}
	_, ok := s.Type("Unknown")
	require.False(t, ok)
}

// Types are compared by name: the registry keeps the first registration it
// sees for any given name.
func TestSchemaFirstRegistrationWins(t *testing.T) {
	first := schema.NewObject("Thing", &schema.Field{Name: "a", Type: schema.String})
	second := schema.NewObject("Thing", &schema.Field{Name: "b", Type: schema.String})
	query := schema.NewObject("Query",
		&schema.Field{Name: "one", Type: first},
		&schema.Field{Name: "two", Type: second},
	)
	s, err := schema.New(query, nil)
	require.NoError(t, err)

	got, ok := s.Type("Thing")
	require.True(t, ok)
	require.Same(t, first, got)
}

func TestSchemaMutationRootRegistered(t *testing.T) {
	query := schema.NewObject("Query", &schema.Field{Name: "hello", Type: schema.String})
	mutation := schema.NewObject("Mutation", &schema.Field{Name: "bump", Type: schema.Int})
	s, err := schema.New(query, mutation)
	require.NoError(t, err)
	require.Same(t, mutation, s.MutationType())

	got, ok := s.Type("Mutation")
	require.True(t, ok)
	require.Same(t, mutation, got)
}
