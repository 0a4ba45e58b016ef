package di

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/kbukum/navkit/errors"
)

// Register stores a typed factory under T.
//
// Example:
//
//	di.Register[Navigator](store, func() Navigator { return service })
func Register[T any](s *Store, f func() T) {
	s.register(TypeKey[T](), func() any { return f() }, ModeFactory)
}

// Instance registers v under T. Every lookup returns v.
func Instance[T any](s *Store, v T) {
	s.register(TypeKey[T](), func() any { return v }, ModeInstance)
}

// Lazy registers f under T. The first lookup builds the value and later
// lookups return it. f must not look up T itself.
func Lazy[T any](s *Store, f func() T) {
	var (
		once sync.Once
		v    T
	)
	s.register(TypeKey[T](), func() any {
		once.Do(func() { v = f() })
		return v
	}, ModeLazy)
}

// Get looks T up in r. A produced value that is not a T is a miss.
//
// Example:
//
//	if nav, ok := di.Get[Navigator](registry); ok {
//	    nav.Navigate(route, from, style, true, nil)
//	}
func Get[T any](r Registry) (T, bool) {
	var zero T
	v, ok := r.Lookup(TypeKey[T]())
	if !ok {
		return zero, false
	}
	result, ok := v.(T)
	if !ok {
		return zero, false
	}
	return result, true
}

// Require looks T up in r and returns an UNREGISTERED_TYPE error on a miss.
func Require[T any](r Registry) (T, error) {
	v, ok := Get[T](r)
	if !ok {
		name := TypeName(TypeKey[T]())
		return v, errors.New(errors.ErrCodeUnregisteredType,
			fmt.Sprintf("nothing registered for %s", name), http.StatusInternalServerError).
			WithDetail("type", name)
	}
	return v, nil
}

// MustGet looks T up in r and panics on a miss.
func MustGet[T any](r Registry) T {
	v, err := Require[T](r)
	if err != nil {
		panic(fmt.Sprintf("di: %v", err))
	}
	return v
}
