package deeplink

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"reflect"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kbukum/navkit/component"
	"github.com/kbukum/navkit/config"
	"github.com/kbukum/navkit/logger"
	"github.com/kbukum/navkit/observability"
)

const (
	componentName = "deeplink-server"
	healthPath    = "/healthz"
)

var (
	_ component.Component     = (*Server)(nil)
	_ component.Describable   = (*Server)(nil)
	_ component.RouteProvider = (*Server)(nil)
)

// Server hosts the deep-link Handler on a gin engine.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     config.DeepLinkConfig
	log        *logger.Logger

	mu       sync.Mutex
	listener net.Listener
}

// ServerOption configures a Server.
type ServerOption func(*serverOptions)

type serverOptions struct {
	log      *logger.Logger
	health   HealthFunc
	handlers []*Handler
}

// WithServerLogger sets the server's logger.
func WithServerLogger(l *logger.Logger) ServerOption {
	return func(o *serverOptions) { o.log = l }
}

// WithHealth serves fn on GET /healthz.
func WithHealth(fn HealthFunc) ServerOption {
	return func(o *serverOptions) { o.health = fn }
}

// WithHandler mounts h on the engine.
func WithHandler(h *Handler) ServerOption {
	return func(o *serverOptions) { o.handlers = append(o.handlers, h) }
}

// NewServer creates a server with the recovery, request-id and request
// logging middleware installed. Nothing is bound until Start.
func NewServer(cfg config.DeepLinkConfig, opts ...ServerOption) *Server {
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	o := &serverOptions{log: logger.Get("deeplink")}
	for _, opt := range opts {
		opt(o)
	}

	s := &Server{
		engine: gin.New(),
		config: cfg,
		log:    o.log,
	}
	// Middleware must be installed before any route.
	s.engine.Use(Recovery(s.log), RequestID(), RequestLogger(s.log))
	if o.health != nil {
		s.engine.GET(healthPath, healthHandler(o.health))
	}
	for _, h := range o.handlers {
		h.Register(s.engine)
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Engine returns the gin engine for extra route registration.
func (s *Server) Engine() *gin.Engine { return s.engine }

// Name returns the component name.
func (s *Server) Name() string { return componentName }

// Start binds the configured address and serves in the background. It
// returns once the listener is bound.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("deeplink server failed to bind %s: %w", s.config.Addr, err)
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Error("Server error", logger.Fields(logger.FieldError, err.Error()))
		}
	}()

	s.log.Info("Deep-link server started", logger.Fields("addr", ln.Addr().String()))
	return nil
}

// Stop gracefully shuts the server down with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Shutting down deep-link server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s.mu.Lock()
	s.listener = nil
	s.mu.Unlock()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("deeplink server shutdown: %w", err)
	}
	return nil
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.config.Addr
}

// CheckHealth reports up while the server is listening.
func (s *Server) CheckHealth(ctx context.Context) observability.Health {
	s.mu.Lock()
	listening := s.listener != nil
	s.mu.Unlock()
	if !listening {
		return observability.Health{Name: componentName, Status: observability.HealthStatusDown, Message: "not listening"}
	}
	return observability.Health{Name: componentName, Status: observability.HealthStatusUp}
}

// Describe returns the summary entry for the server.
func (s *Server) Describe() component.Description {
	return component.Description{
		Name:    "Deep-link Server",
		Type:    "server",
		Details: s.Addr(),
	}
}

// Routes returns the engine's HTTP routes, sorted by path.
func (s *Server) Routes() []component.Route {
	ginRoutes := s.engine.Routes()
	sort.Slice(ginRoutes, func(i, j int) bool {
		if ginRoutes[i].Path != ginRoutes[j].Path {
			return ginRoutes[i].Path < ginRoutes[j].Path
		}
		return ginRoutes[i].Method < ginRoutes[j].Method
	})

	routes := make([]component.Route, 0, len(ginRoutes))
	for _, r := range ginRoutes {
		routes = append(routes, component.Route{
			Method:  r.Method,
			Path:    r.Path,
			Handler: handlerName(r.HandlerFunc),
		})
	}
	return routes
}

// handlerName trims a gin handler's symbol to "Type.method".
func handlerName(fn gin.HandlerFunc) string {
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return "unknown"
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "-fm")
	return strings.TrimPrefix(name, "deeplink.")
}
