package language_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/miniql/miniql/language"
)

func names(ss language.SelectionSet) []string {
	out := make([]string, len(ss))
	for i, f := range ss {
		out[i] = f.Name
	}
	return out
}

func TestParseOperationKinds(t *testing.T) {
	tests := []struct {
		name  string
		query string
		op    language.Operation
	}{
		{"bare selection defaults to query", `{ hello }`, language.Query},
		{"query keyword", `query { hello }`, language.Query},
		{"mutation keyword", `mutation { updateUserStatus }`, language.Mutation},
		{"keyword is case-insensitive", `QUERY { hello }`, language.Query},
		{"mutation case-insensitive", `Mutation { updateUserStatus }`, language.Mutation},
		{"keyword directly against brace", `query{ hello }`, language.Query},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, sels, err := language.Parse(tt.query)
			require.NoError(t, err)
			require.Equal(t, tt.op, op)
			require.Len(t, sels, 1)
		})
	}
}

func TestParseNestedSelections(t *testing.T) {
	_, sels, err := language.Parse(`
		query {
			user {
				id
				profile { bio }
			}
			hello
		}`)
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"user", "hello"}, names(sels)); diff != "" {
		t.Fatalf("top-level fields mismatch (-want +got):\n%s", diff)
	}
	user := sels.ForName("user")
	if diff := cmp.Diff([]string{"id", "profile"}, names(user.SelectionSet)); diff != "" {
		t.Fatalf("nested fields mismatch (-want +got):\n%s", diff)
	}
	profile := user.SelectionSet.ForName("profile")
	require.Equal(t, []string{"bio"}, names(profile.SelectionSet))
	require.Empty(t, profile.SelectionSet.ForName("bio").SelectionSet)
}

func TestParseComments(t *testing.T) {
	_, sels, err := language.Parse(`
		# leading comment
		{
			hello # trailing comment
			# full-line comment
			world
		}`)
	require.NoError(t, err)
	require.Equal(t, []string{"hello", "world"}, names(sels))
}

// Duplicate field names at one level overwrite: the last occurrence's
// selection wins, at the first occurrence's position.
func TestParseDuplicateFieldLastWins(t *testing.T) {
	_, sels, err := language.Parse(`{ user { id } other user { name } }`)
	require.NoError(t, err)
	require.Equal(t, []string{"user", "other"}, names(sels))
	require.Equal(t, []string{"name"}, names(sels.ForName("user").SelectionSet))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"empty input", ``},
		{"only comments", "# nothing here\n  # still nothing"},
		{"missing braces", `hello`},
		{"keyword without selection", `query`},
		{"unknown operation", `subscription { events }`},
		{"unbalanced top level", `{ hello`},
		{"unbalanced nested", `{ user { id }`},
		{"text after selection", `{ hello } trailing`},
		{"unparseable token", `{ hello, world }`},
		{"bad character", `{ $var }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := language.Parse(tt.query)
			require.Error(t, err)
		})
	}
}

// Parsing is pure: the same text yields the same tree on every call.
func TestParseDeterministic(t *testing.T) {
	const q = `{ a { b c } d }`
	_, first, err := language.Parse(q)
	require.NoError(t, err)
	_, second, err := language.Parse(q)
	require.NoError(t, err)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("selection trees differ between parses (-want +got):\n%s", diff)
	}
}
