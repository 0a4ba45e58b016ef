package di

import (
	"fmt"

	"github.com/kbukum/navkit/errors"
)

// ResolutionState is the state of a Dependency handle.
type ResolutionState int

const (
	Unresolved ResolutionState = iota
	Resolved
)

func (s ResolutionState) String() string {
	if s == Resolved {
		return "resolved"
	}
	return "unresolved"
}

// Dependency holds a value of type T obtained from a Registry. It moves from
// Unresolved to Resolved once and never back.
//
// The zero value is an unresolved handle reporting to DefaultFailureHandler.
type Dependency[T any] struct {
	state  ResolutionState
	value  T
	onFail FailureHandler
}

type dependencyConfig struct {
	onFail FailureHandler
}

// DependencyOption configures a Dependency.
type DependencyOption func(*dependencyConfig)

// WithHandler sets the handler that receives the handle's contract violations.
func WithHandler(h FailureHandler) DependencyOption {
	return func(c *dependencyConfig) { c.onFail = h }
}

// NewDependency creates an unresolved handle.
func NewDependency[T any](opts ...DependencyOption) *Dependency[T] {
	var cfg dependencyConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Dependency[T]{onFail: cfg.onFail}
}

// Resolve looks T up in r and stores the result. Resolving a resolved handle
// or finding nothing registered is reported; in both cases the handle keeps
// its state, so a failed lookup can be retried.
func (d *Dependency[T]) Resolve(r Registry) {
	if d.state == Resolved {
		Report(d.onFail, errors.ErrCodeDoubleResolution,
			fmt.Sprintf("attempted to resolve Dependency<%s> twice!", d.typeName()))
		return
	}
	v, ok := Get[T](r)
	if !ok {
		Report(d.onFail, errors.ErrCodeUnregisteredType,
			fmt.Sprintf("attempted to resolve Dependency<%s>, but there's nothing registered for this type.", d.typeName()))
		return
	}
	d.value = v
	d.state = Resolved
}

// Value returns the resolved value. Reading an unresolved handle is reported
// and yields the zero value.
func (d *Dependency[T]) Value() T {
	if d.state != Resolved {
		Report(d.onFail, errors.ErrCodeUnresolvedRead,
			fmt.Sprintf("attempted to read Dependency<%s> before it was resolved", d.typeName()))
		var zero T
		return zero
	}
	return d.value
}

// Resolved returns the value and whether the handle is resolved, without
// reporting anything.
func (d *Dependency[T]) Resolved() (T, bool) {
	return d.value, d.state == Resolved
}

// State returns the handle's resolution state.
func (d *Dependency[T]) State() ResolutionState { return d.state }

// SetFailureHandler replaces the handler for later violations.
func (d *Dependency[T]) SetFailureHandler(h FailureHandler) { d.onFail = h }

func (d *Dependency[T]) typeName() string { return TypeName(TypeKey[T]()) }

func (d *Dependency[T]) dependency() {}

// handle is implemented by every *Dependency[T].
type handle interface {
	Resolvable
	dependency()
}
