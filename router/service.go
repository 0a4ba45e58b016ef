package router

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/navkit/di"
	"github.com/kbukum/navkit/errors"
	"github.com/kbukum/navkit/logger"
	"github.com/kbukum/navkit/observability"
	"github.com/kbukum/navkit/ui"
)

type routeEntry struct {
	handler   RouteHandler
	routeType reflect.Type
}

// Service is the navigation facade. It implements Navigator and
// AnyRouteDecoder.
type Service struct {
	store *di.Store

	mu     sync.RWMutex
	routes map[string]routeEntry
	scopes map[string]int

	onFail  di.FailureHandler
	log     *logger.Logger
	tracer  trace.Tracer
	metrics *observability.Metrics
}

var (
	_ ContextNavigator = (*Service)(nil)
	_ AnyRouteDecoder  = (*Service)(nil)
)

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service's logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithFailureHandler sets the handler for contract violations.
func WithFailureHandler(h di.FailureHandler) Option {
	return func(s *Service) { s.onFail = h }
}

// WithTracer sets the tracer navigation spans are recorded with.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// WithMetrics records every navigation outcome.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService creates a facade resolving features against store.
func NewService(store *di.Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		routes: make(map[string]routeEntry),
		scopes: make(map[string]int),
		onFail: di.DefaultFailureHandler,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get("router")
	}
	if s.tracer == nil {
		s.tracer = observability.Tracer()
	}
	return s
}

// Store returns the store features are resolved against.
func (s *Service) Store() *di.Store { return s.store }

// Register stores factory under t in the service's store.
func (s *Service) Register(factory di.Factory, t reflect.Type) {
	s.store.Register(t, factory)
}

// RegisterNavigator makes the service the store's Navigator and
// AnyRouteDecoder.
func (s *Service) RegisterNavigator() {
	di.Instance[Navigator](s.store, s)
	di.Instance[AnyRouteDecoder](s.store, s)
}

// RegisterViewRouter registers a factory producing a fresh ViewRouter per
// lookup, reporting to the service's failure handler.
func (s *Service) RegisterViewRouter() {
	RegisterViewRouter(s.store, WithViewFailureHandler(s.onFail))
}

// RegisterRouteHandler routes every identifier h owns to h. An identifier
// already owned by another handler is reported and keeps its first owner.
func (s *Service) RegisterRouteHandler(h RouteHandler) {
	name := HandlerName(h)
	for _, r := range h.Routes() {
		id := r.Identifier()

		s.mu.Lock()
		existing, taken := s.routes[id]
		conflict := taken && !sameHandler(existing.handler, h)
		if !conflict {
			s.routes[id] = routeEntry{handler: h, routeType: reflect.TypeOf(r)}
		}
		s.mu.Unlock()

		if conflict {
			di.Report(s.onFail, errors.ErrCodeDuplicateRegistration,
				fmt.Sprintf("route %s is already handled by %s", id, HandlerName(existing.handler)))
			continue
		}
		s.log.Debug("route registered", logger.Fields(logger.FieldRoute, id, logger.FieldHandler, name))
	}
}

// sameHandler reports whether a and b are the same handler. Pointers match
// by address; values match only when they are comparable and equal.
func sameHandler(a, b RouteHandler) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if va.Kind() == reflect.Pointer {
		return va.Pointer() == vb.Pointer()
	}
	return va.Comparable() && vb.Comparable() && va.Equal(vb)
}

// Routes returns every registered route identifier, sorted.
func (s *Service) Routes() []string {
	s.mu.RLock()
	ids := make([]string, 0, len(s.routes))
	for id := range s.routes {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

// HandlerFor returns the handler owning identifier.
func (s *Service) HandlerFor(identifier string) (RouteHandler, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.routes[identifier]
	return e.handler, ok
}

// Navigate shows route from the given controller with style. Missing
// arguments, an unhandled route, a handler without a destination and a
// failed transition are reported to the failure handler.
func (s *Service) Navigate(route Route, from *ui.Controller, style PresentationStyle, animated bool, completion func()) {
	_ = s.NavigateContext(context.Background(), route, from, style, animated, completion)
}

// NavigateContext is Navigate recorded under ctx's span. A failure is
// reported to the failure handler first and, if the handler returns, is
// returned as an *errors.AppError.
func (s *Service) NavigateContext(ctx context.Context, route Route, from *ui.Controller, style PresentationStyle, animated bool, completion func()) (navErr error) {
	ctx, span := s.tracer.Start(ctx, observability.SpanNavigate,
		trace.WithAttributes(attribute.Bool(observability.AttrAnimated, animated)))
	defer func() { observability.EndSpan(span, navErr) }()

	if route == nil || from == nil || style == nil {
		s.fail(ctx, &navErr, errors.ErrCodeMissingCollaborator,
			"a route, a source controller and a presentation style are required to navigate", "", "")
		return navErr
	}

	id, styleName := route.Identifier(), style.Name()
	span.SetAttributes(
		attribute.String(observability.AttrRoute, id),
		attribute.String(observability.AttrStyle, styleName),
		attribute.String(observability.AttrControllerID, from.ID().String()),
	)

	s.mu.RLock()
	entry, ok := s.routes[id]
	s.mu.RUnlock()
	if !ok {
		s.fail(ctx, &navErr, errors.ErrCodeRouteNotHandled,
			fmt.Sprintf("attempted to navigate to %s, but there's no handler registered for it.", id), id, styleName)
		return navErr
	}
	handlerName := HandlerName(entry.handler)
	span.SetAttributes(attribute.String(observability.AttrHandler, handlerName))

	feature := entry.handler.Destination(route, from)
	if feature == nil {
		s.fail(ctx, &navErr, errors.ErrCodeMissingCollaborator,
			fmt.Sprintf("%s returned no destination for %s", handlerName, id), id, styleName)
		return navErr
	}
	if r, ok := feature.(di.Resolvable); ok {
		r.Resolve(s.store)
	}

	dest := feature.Build(route)
	if dest == nil {
		s.fail(ctx, &navErr, errors.ErrCodeMissingCollaborator,
			fmt.Sprintf("the destination for %s built no controller", id), id, styleName)
		return navErr
	}

	if err := style.Present(dest, from, animated, completion); err != nil {
		s.fail(ctx, &navErr, errors.ErrCodePresentationFailed,
			fmt.Sprintf("failed to present %s: %v", id, err), id, styleName)
		return navErr
	}

	s.metrics.RecordNavigation(ctx, id, styleName, observability.StatusOK)
	s.log.Debug("navigated", logger.Fields(
		logger.FieldRoute, id,
		logger.FieldStyle, styleName,
		logger.FieldHandler, handlerName,
		logger.FieldAnimated, animated,
		logger.FieldControllerID, dest.ID().String(),
	))
	return nil
}

// fail stores the error the navigation returns, counts the failure and
// reports it. The handler may not return.
func (s *Service) fail(ctx context.Context, errp *error, code errors.ErrorCode, message, route, style string) {
	status, httpStatus := observability.StatusError, http.StatusInternalServerError
	switch code {
	case errors.ErrCodeRouteNotHandled:
		status, httpStatus = observability.StatusMiss, http.StatusNotFound
	case errors.ErrCodePresentationFailed:
		httpStatus = http.StatusUnprocessableEntity
	}
	appErr := errors.New(code, message, httpStatus)
	if route != "" {
		appErr.WithDetail("identifier", route)
	}
	*errp = appErr
	s.metrics.RecordNavigation(ctx, route, style, status)
	di.Report(s.onFail, code, message)
}
