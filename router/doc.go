// Package router dispatches navigation requests to the feature that owns a
// route and presents the controller it builds.
//
// A RouteHandler owns a set of route identifiers and maps each route to a
// Feature. The Service looks the handler up, resolves the feature against
// the store, builds its controller and hands it to a PresentationStyle:
//
//	svc := router.NewService(store)
//	svc.RegisterNavigator()
//	svc.RegisterViewRouter()
//	svc.RegisterRouteHandler(profile.Handler{})
//
//	svc.Navigate(profile.Route{UserID: id}, from, router.Push{}, true, nil)
//
// Screens navigate through a ViewRouter, which holds a weak reference to the
// controller it built and the Navigator it resolved:
//
//	type Feature struct {
//	    router di.Dependency[router.ViewNavigator]
//	}
//
//	func (f *Feature) Resolve(r di.Registry) { di.ResolveFields(f, r) }
//
//	func (f *Feature) Build(router.Route) *ui.Controller {
//	    return f.router.Value().BuildController(ui.Text("profile"))
//	}
//
// Routes also travel as JSON envelopes, {"identifier": "...", "route": {...}},
// which DecodeAnyRoute turns back into typed values.
package router
