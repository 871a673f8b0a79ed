package schema

import (
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/miniql/miniql/errors"
)

// BuildFromSDL constructs a Schema from GraphQL SDL text. Only object type
// definitions and scalar declarations are supported; the engine has no
// interface, union, enum or input kinds. Resolvers are attached by
// "Type.field" key; fields without an entry fall back to default
// resolution against the source value.
func BuildFromSDL(sdl string, resolvers map[string]Resolver) (*Schema, error) {
	doc, err := parser.ParseSchema(&ast.Source{Name: "schema", Input: sdl})
	if err != nil {
		return nil, errors.Wrap(err, "invalid schema document")
	}

	// First pass: shells for every named type, so fields can reference
	// types defined later (or themselves).
	named := make(map[string]*Type, len(doc.Definitions))
	for _, b := range builtins {
		named[b.Name] = b
	}
	for _, def := range doc.Definitions {
		switch def.Kind {
		case ast.Object:
			named[def.Name] = NewObject(def.Name)
			named[def.Name].Description = def.Description
		case ast.Scalar:
			if _, ok := named[def.Name]; !ok {
				named[def.Name] = NewScalar(def.Name)
			}
		default:
			return nil, errors.New("unsupported definition kind %s for type %s", def.Kind, def.Name)
		}
	}

	// Second pass: fields.
	for _, def := range doc.Definitions {
		if def.Kind != ast.Object {
			continue
		}
		obj := named[def.Name]
		for _, fd := range def.Fields {
			ft, err := typeFromAST(fd.Type, named)
			if err != nil {
				return nil, err
			}
			f := &Field{
				Name:        fd.Name,
				Description: fd.Description,
				Type:        ft,
				Resolver:    resolvers[def.Name+"."+fd.Name],
			}
			for _, ad := range fd.Arguments {
				at, err := typeFromAST(ad.Type, named)
				if err != nil {
					return nil, err
				}
				f.Args = append(f.Args, &Argument{Name: ad.Name, Type: at})
			}
			obj.AddField(f)
		}
	}

	queryName, mutationName := rootNames(doc)
	query := named[queryName]
	if query == nil {
		return nil, errors.New("schema has no %s type", queryName)
	}
	var mutation *Type
	if mutationName != "" {
		mutation = named[mutationName]
		if mutation == nil {
			return nil, errors.New("schema has no %s type", mutationName)
		}
	}
	return New(query, mutation)
}

// rootNames resolves the root operation type names, honoring an explicit
// schema { query: ... } block and defaulting to Query/Mutation otherwise.
// The mutation name is empty when the document defines no mutation root.
func rootNames(doc *ast.SchemaDocument) (string, string) {
	queryName := "Query"
	mutationName := ""
	explicitMutation := false
	for _, sd := range doc.Schema {
		for _, op := range sd.OperationTypes {
			switch op.Operation {
			case ast.Query:
				queryName = op.Type
			case ast.Mutation:
				mutationName = op.Type
				explicitMutation = true
			}
		}
	}
	if !explicitMutation {
		for _, def := range doc.Definitions {
			if def.Kind == ast.Object && def.Name == "Mutation" {
				mutationName = "Mutation"
			}
		}
	}
	return queryName, mutationName
}

func typeFromAST(t *ast.Type, named map[string]*Type) (*Type, error) {
	if t.NonNull {
		inner, err := typeFromAST(&ast.Type{NamedType: t.NamedType, Elem: t.Elem}, named)
		if err != nil {
			return nil, err
		}
		return NewNonNull(inner), nil
	}
	if t.NamedType != "" {
		typ, ok := named[t.NamedType]
		if !ok {
			return nil, errors.New("unknown type %s", t.NamedType)
		}
		return typ, nil
	}
	inner, err := typeFromAST(t.Elem, named)
	if err != nil {
		return nil, err
	}
	return NewList(inner), nil
}
