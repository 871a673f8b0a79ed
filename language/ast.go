package language

// Operation is the kind of a parsed operation.
type Operation string

const (
	Query    Operation = "query"
	Mutation Operation = "mutation"
)

// Field is one requested field together with its nested selection. An empty
// SelectionSet means the field is a leaf: no further fields were requested.
type Field struct {
	Name         string
	SelectionSet SelectionSet
}

// SelectionSet is an ordered list of requested fields. Field names are
// unique within one set; when the same name appears twice in the query text
// the last occurrence wins, keeping the position of the first.
type SelectionSet []*Field

// ForName returns the field with the given name, or nil.
func (ss SelectionSet) ForName(name string) *Field {
	for _, f := range ss {
		if f.Name == name {
			return f
		}
	}
	return nil
}
