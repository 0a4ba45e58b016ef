package di

import (
	"fmt"
	"reflect"
	"unsafe"
)

var handleType = reflect.TypeFor[handle]()

// ResolveFields resolves every Dependency field of the struct target points
// to, in declaration order. Fields may be Dependency[T] or *Dependency[T];
// nil pointers get a fresh handle. Unexported fields are included.
//
// It lets a type implement Resolvable in one line:
//
//	func (h *Home) Resolve(r di.Registry) { di.ResolveFields(h, r) }
func ResolveFields(target any, r Registry) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("di: ResolveFields needs a non-nil struct pointer, got %T", target))
	}
	sv := rv.Elem()
	for i := 0; i < sv.NumField(); i++ {
		if h := fieldHandle(sv.Field(i)); h != nil {
			h.Resolve(r)
		}
	}
}

func fieldHandle(f reflect.Value) handle {
	if !f.CanSet() {
		// Unexported field: reach it through its address.
		f = reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
	}
	switch {
	case reflect.PointerTo(f.Type()).Implements(handleType):
		return f.Addr().Interface().(handle)
	case f.Kind() == reflect.Pointer && f.Type().Implements(handleType):
		if f.IsNil() {
			f.Set(reflect.New(f.Type().Elem()))
		}
		return f.Interface().(handle)
	}
	return nil
}
