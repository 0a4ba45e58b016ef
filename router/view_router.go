package router

import (
	"weak"

	"github.com/kbukum/navkit/di"
	"github.com/kbukum/navkit/errors"
	"github.com/kbukum/navkit/ui"
)

// ViewNavigator is the per-screen navigation surface.
type ViewNavigator interface {
	// Navigate shows route from the controller built by BuildController.
	Navigate(route Route, style PresentationStyle, animated bool, completion func())
	// BuildController wraps root in a controller and binds to it.
	BuildController(root ui.View) *ui.Controller
}

// NavigateView is v.Navigate without a completion.
func NavigateView(v ViewNavigator, route Route, style PresentationStyle, animated bool) {
	v.Navigate(route, style, animated, nil)
}

// ViewRouter serves one screen. It resolves the Navigator from the store and
// keeps a weak reference to the controller it built, so a dismissed screen
// is not kept alive by its router.
type ViewRouter struct {
	navigator  Navigator
	controller weak.Pointer[ui.Controller]
	onFail     di.FailureHandler
}

var (
	_ ViewNavigator = (*ViewRouter)(nil)
	_ di.Resolvable = (*ViewRouter)(nil)
)

// ViewRouterOption configures a ViewRouter.
type ViewRouterOption func(*ViewRouter)

// WithViewFailureHandler sets the handler for contract violations.
func WithViewFailureHandler(h di.FailureHandler) ViewRouterOption {
	return func(v *ViewRouter) { v.onFail = h }
}

// NewViewRouter creates an unbound router.
func NewViewRouter(opts ...ViewRouterOption) *ViewRouter {
	v := &ViewRouter{onFail: di.DefaultFailureHandler}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// RegisterViewRouter registers a factory producing a fresh ViewRouter per
// lookup under ViewNavigator.
func RegisterViewRouter(reg di.Registrar, opts ...ViewRouterOption) {
	reg.Register(di.TypeKey[ViewNavigator](), func() any { return NewViewRouter(opts...) })
}

// Resolve looks the Navigator up in r.
func (v *ViewRouter) Resolve(r di.Registry) {
	nav, ok := di.Get[Navigator](r)
	if !ok {
		di.Report(v.onFail, errors.ErrCodeUnregisteredType,
			"attempted to resolve Navigator, but there's nothing registered for this type.")
		return
	}
	v.navigator = nav
}

// BuildController wraps root in a hosting controller and binds the router to
// it, replacing any earlier binding.
func (v *ViewRouter) BuildController(root ui.View) *ui.Controller {
	c := ui.NewHostingController(root)
	v.controller = weak.Make(c)
	return c
}

// Controller returns the bound controller while it is alive.
func (v *ViewRouter) Controller() *ui.Controller {
	return v.controller.Value()
}

// Navigate shows route from the bound controller through the resolved
// Navigator. Without both it reports a failure and does nothing.
func (v *ViewRouter) Navigate(route Route, style PresentationStyle, animated bool, completion func()) {
	from := v.controller.Value()
	if v.navigator == nil || from == nil {
		di.Report(v.onFail, errors.ErrCodeMissingCollaborator,
			"router service and destination are required to navigate")
		return
	}
	v.navigator.Navigate(route, from, style, animated, completion)
}
