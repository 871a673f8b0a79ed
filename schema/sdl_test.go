package schema_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/miniql/miniql/schema"
)

const testSDL = `
type Query {
  hello: String
  user: User
  users: [User!]
}

type User {
  id: ID!
  name: String
  friend: User
}

type Mutation {
  updateUserStatus: Boolean!
}
`

func TestBuildFromSDL(t *testing.T) {
	resolvers := map[string]schema.Resolver{
		"Query.hello": func(ctx context.Context, source any, args map[string]any) (any, error) {
			return "World", nil
		},
	}
	s, err := schema.BuildFromSDL(testSDL, resolvers)
	require.NoError(t, err)

	require.Equal(t, "Query", s.QueryType().Name)
	require.NotNil(t, s.MutationType())
	require.Equal(t, "Mutation", s.MutationType().Name)

	user, ok := s.Type("User")
	require.True(t, ok)
	require.Equal(t, schema.KindObject, user.Kind)

	id, err := user.Field("id")
	require.NoError(t, err)
	require.Equal(t, "ID!", id.Type.String())

	// Self-reference resolves to the same descriptor.
	friend, err := user.Field("friend")
	require.NoError(t, err)
	require.Same(t, user, friend.Type)

	users, err := s.QueryType().Field("users")
	require.NoError(t, err)
	require.Equal(t, "[User!]", users.Type.String())
	require.Same(t, user, users.Type.OfType.OfType)

	hello, err := s.QueryType().Field("hello")
	require.NoError(t, err)
	require.NotNil(t, hello.Resolver)
}

func TestBuildFromSDLExplicitRoots(t *testing.T) {
	s, err := schema.BuildFromSDL(`
		schema { query: Root }
		type Root { ok: Boolean }
	`, nil)
	require.NoError(t, err)
	require.Equal(t, "Root", s.QueryType().Name)
	require.Nil(t, s.MutationType())
}

func TestBuildFromSDLCustomScalar(t *testing.T) {
	s, err := schema.BuildFromSDL(`
		scalar DateTime
		type Query { now: DateTime }
	`, nil)
	require.NoError(t, err)
	dt, ok := s.Type("DateTime")
	require.True(t, ok)
	require.Equal(t, schema.KindScalar, dt.Kind)
}

func TestBuildFromSDLErrors(t *testing.T) {
	tests := []struct {
		name string
		sdl  string
	}{
		{"syntax error", `type Query {`},
		{"unsupported kind", `interface Node { id: ID! } type Query { n: ID }`},
		{"unknown field type", `type Query { user: Missing }`},
		{"missing query type", `type User { id: ID }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schema.BuildFromSDL(tt.sdl, nil)
			require.Error(t, err)
		})
	}
}

func TestRenderRoundTrip(t *testing.T) {
	s, err := schema.BuildFromSDL(testSDL, nil)
	require.NoError(t, err)

	want := `type Mutation {
  updateUserStatus: Boolean!
}

type Query {
  hello: String
  user: User
  users: [User!]
}

type User {
  id: ID!
  name: String
  friend: User
}
`
	if diff := cmp.Diff(want, schema.Render(s)); diff != "" {
		t.Fatalf("rendered SDL mismatch (-want +got):\n%s", diff)
	}
}
