package router

import (
	"context"
	"reflect"

	jsoniter "github.com/json-iterator/go"

	"github.com/kbukum/navkit/di"
	"github.com/kbukum/navkit/ui"
)

// Route is a navigation target.
type Route interface {
	// Identifier names the route type. It is stable across releases because
	// serialized routes are decoded by it.
	Identifier() string
}

// Feature builds the controller for a route. A Feature that also implements
// di.Resolvable is resolved against the store before Build.
type Feature interface {
	Build(route Route) *ui.Controller
}

// RouteHandler owns a set of routes.
type RouteHandler interface {
	// Routes returns one prototype value per route type the handler owns.
	// Decoded routes take the prototype's concrete type.
	Routes() []Route
	// Destination returns the feature that shows route.
	Destination(route Route, from *ui.Controller) Feature
}

// Named is implemented by handlers that name themselves in logs and errors.
type Named interface {
	Name() string
}

// HandlerName returns h's name, or its bare type name.
func HandlerName(h RouteHandler) string {
	if n, ok := h.(Named); ok {
		return n.Name()
	}
	return di.TypeName(reflect.TypeOf(h))
}

// AnyRoute is the serialized form of a route.
type AnyRoute struct {
	Identifier string              `json:"identifier" validate:"required,route_id"`
	Route      jsoniter.RawMessage `json:"route,omitempty"`
}

// Navigator performs navigation.
type Navigator interface {
	// Navigate shows route from the given controller. completion, if not nil,
	// runs after the transition.
	Navigate(route Route, from *ui.Controller, style PresentationStyle, animated bool, completion func())
}

// ContextNavigator is a Navigator that also reports the outcome of a
// navigation and traces it under the caller's context.
type ContextNavigator interface {
	Navigator
	NavigateContext(ctx context.Context, route Route, from *ui.Controller, style PresentationStyle, animated bool, completion func()) error
}

// Navigate is n.Navigate without a completion.
func Navigate(n Navigator, route Route, from *ui.Controller, style PresentationStyle, animated bool) {
	n.Navigate(route, from, style, animated, nil)
}

// AnyRouteDecoder turns a serialized route back into a typed value.
type AnyRouteDecoder interface {
	// DecodeAnyRoute returns the route and the name of the handler owning it.
	DecodeAnyRoute(data []byte) (Route, string, error)
}
