package executor

import (
	"reflect"
	"strings"
)

// FieldSource lets a host value type supply raw field values directly,
// bypassing reflection. When the source implements it, QueryField is the
// only lookup consulted.
type FieldSource interface {
	// QueryField returns the raw value for the named field and whether the
	// source carries such a field at all.
	QueryField(name string) (any, bool)
}

// defaultResolve is the resolution used by fields without a resolver:
// FieldSource capability, then keyed lookup on maps, then an exported
// struct field, then a zero-argument accessor method. It yields nil when
// none apply.
func defaultResolve(source any, name string) any {
	if isNil(source) {
		return nil
	}

	if fs, ok := source.(FieldSource); ok {
		if v, ok := fs.QueryField(name); ok {
			return v
		}
		return nil
	}

	if m, ok := source.(map[string]any); ok {
		return m[name]
	}

	rv := reflect.ValueOf(source)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		v := rv.MapIndex(reflect.ValueOf(name))
		if v.IsValid() {
			return v.Interface()
		}
		return nil
	}

	if v, ok := structField(rv, name); ok {
		return v
	}
	if v, ok := accessorMethod(rv, name); ok {
		return v
	}
	return nil
}

// structField looks up an exported field by exact name, then by a
// case-insensitive match.
func structField(rv reflect.Value, name string) (any, bool) {
	elem := rv
	for elem.Kind() == reflect.Ptr {
		elem = elem.Elem()
	}
	if elem.Kind() != reflect.Struct {
		return nil, false
	}
	if f := elem.FieldByName(name); f.IsValid() && f.CanInterface() {
		return f.Interface(), true
	}
	f := elem.FieldByNameFunc(func(n string) bool { return strings.EqualFold(n, name) })
	if f.IsValid() && f.CanInterface() {
		return f.Interface(), true
	}
	return nil, false
}

// accessorMethod calls a zero-argument single-result method matching the
// field name (exact, then case-insensitive).
func accessorMethod(rv reflect.Value, name string) (any, bool) {
	m := rv.MethodByName(name)
	if !m.IsValid() {
		t := rv.Type()
		for i := 0; i < t.NumMethod(); i++ {
			if strings.EqualFold(t.Method(i).Name, name) {
				m = rv.Method(i)
				break
			}
		}
	}
	if !m.IsValid() {
		return nil, false
	}
	mt := m.Type()
	if mt.NumIn() != 0 || mt.NumOut() != 1 {
		return nil, false
	}
	return m.Call(nil)[0].Interface(), true
}
