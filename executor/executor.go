package executor

import (
	"context"

	"github.com/miniql/miniql/errors"
	"github.com/miniql/miniql/language"
	"github.com/miniql/miniql/schema"
)

// Executor walks a parsed selection tree against a schema and a root value,
// producing a plain result tree. It holds no per-request state: one
// Executor is safely shared across concurrent requests.
type Executor struct {
	schema *schema.Schema
}

// NewExecutor returns an Executor over the given schema.
func NewExecutor(s *schema.Schema) *Executor {
	return &Executor{schema: s}
}

// Execute resolves the selection tree against the root type for the
// operation kind. The first error aborts the whole request; callers receive
// either a complete result tree or a single error, never both.
func (e *Executor) Execute(ctx context.Context, op language.Operation, selections language.SelectionSet, rootValue any) (map[string]any, error) {
	var rootType *schema.Type
	switch op {
	case language.Query:
		rootType = e.schema.QueryType()
	case language.Mutation:
		rootType = e.schema.MutationType()
		if rootType == nil {
			return nil, errors.New("schema does not define a mutation type")
		}
	default:
		return nil, errors.New("unsupported operation type %q", op)
	}
	return e.resolveSelections(ctx, selections, rootType, rootValue)
}

// resolveSelections resolves one selection level against the current type
// and source value. Fields are resolved in selection order; the result tree
// mirrors the selection's key set exactly.
func (e *Executor) resolveSelections(ctx context.Context, selections language.SelectionSet, typ *schema.Type, source any) (map[string]any, error) {
	if typ.Kind != schema.KindObject {
		return nil, errors.New("cannot select fields on non-object type %s", typ)
	}

	result := make(map[string]any, len(selections))
	for _, sel := range selections {
		fieldDef, err := typ.Field(sel.Name)
		if err != nil {
			return nil, err
		}
		if fieldDef == nil {
			return nil, errors.New("cannot query field %q on type %q", sel.Name, typ.Name)
		}

		raw, err := e.resolveFieldValue(ctx, fieldDef, source)
		if err != nil {
			return nil, err
		}

		value, err := e.completeField(ctx, sel, fieldDef.Type, raw)
		if err != nil {
			return nil, err
		}
		result[sel.Name] = value
	}
	return result, nil
}

// completeField applies the per-field recursion policy: descend into object
// selections, map over lists of objects, and otherwise hand the raw value
// to the coercer.
func (e *Executor) completeField(ctx context.Context, sel *language.Field, typ *schema.Type, raw any) (any, error) {
	switch {
	case typ.Kind == schema.KindObject && len(sel.SelectionSet) > 0:
		if isNil(raw) {
			return nil, nil
		}
		return e.resolveSelections(ctx, sel.SelectionSet, typ, raw)

	case typ.Kind == schema.KindList && typ.OfType.Kind == schema.KindObject:
		if isNil(raw) {
			return nil, nil
		}
		items, ok := iterate(raw)
		if !ok {
			return nil, errors.New("value of type %T is not iterable for list type %s", raw, typ)
		}
		out := make([]any, len(items))
		for i, item := range items {
			if isNil(item) {
				out[i] = nil
				continue
			}
			v, err := e.resolveSelections(ctx, sel.SelectionSet, typ.OfType, item)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	default:
		return coerceValue(raw, typ)
	}
}

// resolveFieldValue obtains the raw field value: through the field's
// resolver when present, otherwise by default resolution against the source
// value. Engine errors returned by a resolver propagate unchanged; foreign
// errors are wrapped with the field attached.
func (e *Executor) resolveFieldValue(ctx context.Context, def *schema.Field, source any) (any, error) {
	if def.Resolver == nil {
		return defaultResolve(source, def.Name), nil
	}
	value, err := def.Resolver(ctx, source, map[string]any{})
	if err != nil {
		if qe, ok := err.(*errors.QueryError); ok {
			return nil, qe
		}
		return nil, errors.Wrap(err, "resolver error for field %q", def.Name)
	}
	return value, nil
}
