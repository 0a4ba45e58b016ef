package deeplink

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/kbukum/navkit/errors"
	"github.com/kbukum/navkit/logger"
	"github.com/kbukum/navkit/observability"
	"github.com/kbukum/navkit/router"
	"github.com/kbukum/navkit/ui"
)

// Accepted is the body of a successful deep-link response.
type Accepted struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
	Handler    string `json:"handler"`
}

// Handler turns posted AnyRoute envelopes into navigation.
type Handler struct {
	Decoder   router.AnyRouteDecoder
	Navigator router.Navigator
	// Root returns the controller deep links navigate from, usually the
	// window's visible controller. A nil result answers 503.
	Root     func() *ui.Controller
	Style    router.PresentationStyle
	Animated bool

	Metrics *observability.Metrics
	Tracer  trace.Tracer
	Log     *logger.Logger

	// The ui tree is not safe for concurrent use.
	mu sync.Mutex
}

// Register mounts POST /deeplinks on r.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/deeplinks", h.handle)
}

func (h *Handler) handle(c *gin.Context) {
	ctx, span := h.tracer().Start(c.Request.Context(), observability.SpanDeepLink)
	var spanErr error
	defer func() { observability.EndSpan(span, spanErr) }()

	fail := func(err error, status string) {
		spanErr = err
		span.SetAttributes(attribute.String(observability.AttrStatus, status))
		h.Metrics.RecordDeepLink(ctx, status)
		respondWithError(c, err)
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		fail(apperrors.InvalidRoute("unreadable body").WithCause(err), observability.StatusRejected)
		return
	}

	route, handlerName, err := h.Decoder.DecodeAnyRoute(body)
	if err != nil {
		status := observability.StatusRejected
		if apperrors.HasCode(err, apperrors.ErrCodeRouteNotHandled) {
			status = observability.StatusMiss
		}
		fail(err, status)
		return
	}
	id := route.Identifier()
	span.SetAttributes(
		attribute.String(observability.AttrRoute, id),
		attribute.String(observability.AttrHandler, handlerName),
	)

	if err := h.navigate(ctx, route); err != nil {
		status := observability.StatusError
		if apperrors.HasCode(err, apperrors.ErrCodeRouteNotHandled) {
			status = observability.StatusMiss
		}
		fail(err, status)
		return
	}

	reqID := requestID(c).String()
	span.SetAttributes(attribute.String(observability.AttrStatus, observability.StatusOK))
	h.Metrics.RecordDeepLink(ctx, observability.StatusOK)
	h.log().Info("deep link accepted", logger.Fields(
		logger.FieldRequestID, reqID,
		logger.FieldRoute, id,
		logger.FieldHandler, handlerName,
	))
	c.JSON(http.StatusAccepted, Accepted{ID: reqID, Identifier: id, Handler: handlerName})
}

// navigate shows route from the root controller. Navigators that report
// their outcome are traced under ctx; any other navigation counts as failed
// unless its completion ran.
func (h *Handler) navigate(ctx context.Context, route router.Route) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var root *ui.Controller
	if h.Root != nil {
		root = h.Root()
	}
	if root == nil {
		return apperrors.ServiceUnavailable("root controller")
	}
	style := h.Style
	if style == nil {
		style = router.Push{}
	}

	if cn, ok := h.Navigator.(router.ContextNavigator); ok {
		return cn.NavigateContext(ctx, route, root, style, h.Animated, nil)
	}
	completed := false
	h.Navigator.Navigate(route, root, style, h.Animated, func() { completed = true })
	if !completed {
		return apperrors.New(apperrors.ErrCodePresentationFailed,
			fmt.Sprintf("Navigation to %q did not complete.", route.Identifier()),
			http.StatusUnprocessableEntity).WithDetail("identifier", route.Identifier())
	}
	return nil
}

func (h *Handler) tracer() trace.Tracer {
	if h.Tracer != nil {
		return h.Tracer
	}
	return observability.Tracer()
}

func (h *Handler) log() *logger.Logger {
	if h.Log != nil {
		return h.Log
	}
	return logger.Get("deeplink")
}

// respondWithError answers with err's AppError status and body, or a generic
// 500 for any other error.
func respondWithError(c *gin.Context, err error) {
	appErr := apperrors.Wrap(err)
	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}
	c.AbortWithStatusJSON(status, appErr.ToResponse())
}

// HealthFunc reports the service health served on /healthz.
type HealthFunc func(ctx context.Context) *observability.ServiceHealth

// healthHandler answers 200 unless the service is down.
func healthHandler(fn HealthFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		sh := fn(c.Request.Context())
		status := http.StatusOK
		if sh.Status == observability.HealthStatusDown {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, sh)
	}
}
