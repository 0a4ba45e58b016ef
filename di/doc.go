// Package di provides a type-keyed registry of factories and single-resolution
// dependency handles.
//
// A Store maps a type to a zero-argument factory. Looking a type up invokes
// the factory and, when the produced value implements Resolvable, hands the
// store to it before returning, so nested dependencies are resolved depth
// first and synchronously.
//
// # Registration
//
//	store := di.NewStore()
//	di.Register[Greeter](store, func() Greeter { return &englishGreeter{} })
//	di.Instance[*Session](store, session) // same value on every lookup
//
// # Resolution
//
//	type Home struct {
//	    greeter di.Dependency[Greeter]
//	}
//
//	func (h *Home) Resolve(r di.Registry) { di.ResolveFields(h, r) }
//
//	home := di.MustGet[*Home](store)
//	home.greeter.Value().Greet()
//
// Contract violations such as resolving a handle twice are reported to a
// FailureHandler. The default handler logs and panics; tests substitute a
// recorder.
package di
