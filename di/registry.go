package di

import (
	"reflect"
)

// Factory produces an instance on demand.
type Factory func() any

// Registry is the lookup side of a Store. It is what a Resolvable receives.
type Registry interface {
	// Lookup produces an instance registered under t. It reports false when
	// nothing is registered or the factory produced nil.
	Lookup(t reflect.Type) (any, bool)
}

// Registrar is the registration side of a Store.
type Registrar interface {
	Register(t reflect.Type, f Factory)
}

// Resolvable is implemented by values that need the registry once, right
// after they are produced.
type Resolvable interface {
	Resolve(r Registry)
}

// TypeKey returns the registry key for T. Interface types key by the
// interface itself.
func TypeKey[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// TypeName returns the bare name of t with pointers stripped, so *pkg.Widget
// reads as Widget.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}

// isNil reports whether v is nil or a typed nil.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
