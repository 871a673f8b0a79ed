package schema

import (
	"context"

	"github.com/miniql/miniql/errors"
)

// Kind is the closed set of shapes a type descriptor can take.
type Kind string

const (
	KindScalar  Kind = "SCALAR"
	KindObject  Kind = "OBJECT"
	KindList    Kind = "LIST"
	KindNonNull Kind = "NON_NULL"
)

// Type is a tagged-union type descriptor. The payload depends on Kind:
// Scalar carries only a name, Object carries an ordered field list, and
// List/NonNull wrap exactly one inner type. Types are immutable once a
// Schema has been built over them.
type Type struct {
	Kind        Kind
	Name        string // Scalar and Object
	Description string
	OfType      *Type // List and NonNull

	fields []*Field
	index  map[string]int
}

// Resolver produces a field's raw value from its parent value. The args map
// is structurally present for forward compatibility and is always empty.
// Returning (nil, nil) yields a GraphQL null for nullable fields.
type Resolver func(ctx context.Context, source any, args map[string]any) (any, error)

// Field defines a single object field: its declared type, an optional
// resolver, and optional metadata.
type Field struct {
	Name        string
	Description string
	Type        *Type
	Args        []*Argument
	Resolver    Resolver
}

// Argument is a declared field argument. Arguments are carried through the
// type system but not consumed by execution.
type Argument struct {
	Name string
	Type *Type
}

// NewScalar returns a named leaf scalar descriptor. The five built-in
// scalars are package variables; NewScalar exists for custom leaf types.
func NewScalar(name string) *Type {
	return &Type{Kind: KindScalar, Name: name}
}

// NewObject returns an Object type with the given fields in declaration
// order. A later field with an already-used name is ignored; field names
// are unique per object.
func NewObject(name string, fields ...*Field) *Type {
	t := &Type{Kind: KindObject, Name: name, index: make(map[string]int)}
	for _, f := range fields {
		t.AddField(f)
	}
	return t
}

// NewList wraps inner in a List type.
func NewList(of *Type) *Type {
	return &Type{Kind: KindList, OfType: of}
}

// NewNonNull wraps inner in a NonNull type. Wrapping an existing NonNull
// returns it unchanged; NonNull never nests.
func NewNonNull(of *Type) *Type {
	if of.Kind == KindNonNull {
		return of
	}
	return &Type{Kind: KindNonNull, OfType: of}
}

// NewField is a convenience constructor for a resolved field.
func NewField(name string, typ *Type, resolver Resolver) *Field {
	return &Field{Name: name, Type: typ, Resolver: resolver}
}

// AddField appends f to an Object type, keeping insertion order. Duplicate
// names are ignored. Returns t for chaining.
func (t *Type) AddField(f *Field) *Type {
	if t.Kind != KindObject {
		return t
	}
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if _, ok := t.index[f.Name]; ok {
		return t
	}
	t.index[f.Name] = len(t.fields)
	t.fields = append(t.fields, f)
	return t
}

// Field looks up a field definition by name. It fails on non-Object kinds;
// a missing field on an Object returns (nil, nil) so callers can report the
// absence with their own context.
func (t *Type) Field(name string) (*Field, error) {
	if t.Kind != KindObject {
		return nil, errors.New("type %s is not an object type", t.String())
	}
	i, ok := t.index[name]
	if !ok {
		return nil, nil
	}
	return t.fields[i], nil
}

// Fields returns the object's field definitions in declaration order. The
// order is not significant for execution but is preserved for tooling such
// as SDL rendering.
func (t *Type) Fields() []*Field {
	return t.fields
}

// String renders the type reference the way queries spell it: a bare name,
// [T] for lists, T! for non-null wrappers.
func (t *Type) String() string {
	switch t.Kind {
	case KindList:
		return "[" + t.OfType.String() + "]"
	case KindNonNull:
		return t.OfType.String() + "!"
	default:
		return t.Name
	}
}

// Named returns the innermost named type of a (possibly wrapped) reference.
func (t *Type) Named() *Type {
	cur := t
	for cur.OfType != nil {
		cur = cur.OfType
	}
	return cur
}
