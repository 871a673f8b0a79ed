package schema

// The five built-in scalars. Every Schema pre-registers them so field types
// can reference them without explicit registration.
var (
	String = &Type{
		Kind:        KindScalar,
		Name:        "String",
		Description: "The `String` scalar type represents textual data, represented as UTF-8 character sequences.",
	}
	Int = &Type{
		Kind:        KindScalar,
		Name:        "Int",
		Description: "The `Int` scalar type represents non-fractional signed whole numeric values.",
	}
	Float = &Type{
		Kind:        KindScalar,
		Name:        "Float",
		Description: "The `Float` scalar type represents signed double-precision fractional values.",
	}
	Boolean = &Type{
		Kind:        KindScalar,
		Name:        "Boolean",
		Description: "The `Boolean` scalar type represents `true` or `false`.",
	}
	ID = &Type{
		Kind:        KindScalar,
		Name:        "ID",
		Description: "The `ID` scalar type represents a unique identifier, often used to refetch an object or as a key for caching.",
	}
)

var builtins = []*Type{String, Int, Float, Boolean, ID}
