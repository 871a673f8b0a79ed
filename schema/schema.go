// Package schema holds the miniql type system: tagged-union type
// descriptors, field definitions, and the Schema registry that maps every
// reachable type name to its descriptor. A Schema is built once at startup
// and is read-only afterwards, so it is safe to share across concurrent
// requests.
package schema

import (
	"github.com/miniql/miniql/errors"
)

// Schema owns a root Query type, an optional root Mutation type, and the
// flattened name→type map built by walking every reachable type once at
// construction.
type Schema struct {
	query    *Type
	mutation *Type
	types    map[string]*Type
}

// New builds a Schema over the given roots. The query type is required and
// both roots must be Object kind; a nil mutation means the schema does not
// support mutations.
func New(query, mutation *Type) (*Schema, error) {
	if query == nil || query.Kind != KindObject {
		return nil, errors.New("schema query type must be an object type")
	}
	if mutation != nil && mutation.Kind != KindObject {
		return nil, errors.New("schema mutation type must be an object type")
	}
	s := &Schema{
		query:    query,
		mutation: mutation,
		types:    make(map[string]*Type),
	}
	for _, b := range builtins {
		s.types[b.Name] = b
	}
	s.register(query)
	if mutation != nil {
		s.register(mutation)
	}
	return s, nil
}

// register walks t depth-first, recording every named type it reaches.
// A name already present is never re-visited, which terminates the walk on
// cyclic schemas; the first registration of a name wins.
func (s *Schema) register(t *Type) {
	switch t.Kind {
	case KindList, KindNonNull:
		s.register(t.OfType)
	case KindScalar:
		if _, ok := s.types[t.Name]; !ok {
			s.types[t.Name] = t
		}
	case KindObject:
		if _, ok := s.types[t.Name]; ok {
			return
		}
		s.types[t.Name] = t
		for _, f := range t.fields {
			s.register(f.Type)
		}
	}
}

// QueryType returns the root query type.
func (s *Schema) QueryType() *Type { return s.query }

// MutationType returns the root mutation type, or nil if the schema has
// none.
func (s *Schema) MutationType() *Type { return s.mutation }

// Type looks up a registered type by name.
func (s *Schema) Type(name string) (*Type, bool) {
	t, ok := s.types[name]
	return t, ok
}

// Types returns the name→type map. Callers must treat it as read-only.
func (s *Schema) Types() map[string]*Type { return s.types }
