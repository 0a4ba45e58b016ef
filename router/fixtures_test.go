package router

import (
	"github.com/kbukum/navkit/di"
	"github.com/kbukum/navkit/ui"
)

type recorder struct{ messages []string }

func (r *recorder) handle(msg string) { r.messages = append(r.messages, msg) }

type profileRoute struct {
	UserID string `json:"user_id" validate:"required"`
}

func (profileRoute) Identifier() string { return "profile" }

type settingsRoute struct {
	Section string `json:"section,omitempty"`
}

func (settingsRoute) Identifier() string { return "settings" }

type pointerRoute struct {
	Query string `json:"query"`
}

func (*pointerRoute) Identifier() string { return "search" }

// screenFeature builds a screen through its own ViewRouter.
type screenFeature struct {
	router di.Dependency[ViewNavigator]
	built  *ui.Controller
}

func (f *screenFeature) Resolve(r di.Registry) { di.ResolveFields(f, r) }

func (f *screenFeature) Build(route Route) *ui.Controller {
	label := route.Identifier()
	if p, ok := route.(profileRoute); ok {
		label += ":" + p.UserID
	}
	f.built = f.router.Value().BuildController(ui.Text(label))
	return f.built
}

type appHandler struct {
	features []*screenFeature
}

func (h *appHandler) Name() string { return "AppHandler" }

func (h *appHandler) Routes() []Route {
	return []Route{profileRoute{}, settingsRoute{}, &pointerRoute{}}
}

func (h *appHandler) Destination(Route, *ui.Controller) Feature {
	f := &screenFeature{}
	h.features = append(h.features, f)
	return f
}

// plainFeature builds a controller without any dependencies.
type plainFeature struct{ controller *ui.Controller }

func (f plainFeature) Build(Route) *ui.Controller { return f.controller }

type unnamedHandler struct {
	routes  []Route
	feature Feature
}

func (h unnamedHandler) Routes() []Route                           { return h.routes }
func (h unnamedHandler) Destination(Route, *ui.Controller) Feature { return h.feature }

type navCall struct {
	route      Route
	from       *ui.Controller
	style      PresentationStyle
	animated   bool
	completion func()
}

type spyNavigator struct{ calls []navCall }

func (s *spyNavigator) Navigate(route Route, from *ui.Controller, style PresentationStyle, animated bool, completion func()) {
	s.calls = append(s.calls, navCall{route, from, style, animated, completion})
}

// sliceHandler is a value handler that cannot be compared with ==.
type sliceHandler struct {
	routes []Route
}

func (h sliceHandler) Routes() []Route                           { return h.routes }
func (h sliceHandler) Destination(Route, *ui.Controller) Feature { return nil }
