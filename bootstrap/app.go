package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/navkit/component"
	"github.com/kbukum/navkit/config"
	"github.com/kbukum/navkit/deeplink"
	"github.com/kbukum/navkit/di"
	"github.com/kbukum/navkit/logger"
	"github.com/kbukum/navkit/observability"
	"github.com/kbukum/navkit/router"
	"github.com/kbukum/navkit/ui"
)

// App is a navkit application with uniform lifecycle management.
// The type parameter C is the config type, which must satisfy Config.
// Any struct embedding config.NavConfig satisfies Config.
//
// Example:
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*config.NavConfig]) error {
//	    a.Router.RegisterRouteHandler(profile.Handler{})
//	    return nil
//	})
//	app.Run(context.Background())
type App[C Config] struct {
	Name    string
	Version string
	Cfg     C

	Store    *di.Store
	Router   *router.Service
	Window   *ui.Window
	Metrics  *observability.Metrics
	DeepLink *deeplink.Server // nil when deep links are disabled

	Components *component.Registry
	Logger     *logger.Logger
	Summary    *Summary

	gracefulTimeout time.Duration
	onConfigure     []func(ctx context.Context, app *App[C]) error

	onStart []Hook
	onReady []Hook
	onStop  []Hook
}

// NewApp creates a new application instance from a typed config.
// It applies defaults, validates the config, initializes the logger and
// wires the store, the router and the enabled components.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	nav := cfg.GetNavConfig()

	app := &App[C]{
		Name:            nav.Name,
		Version:         nav.Version,
		Cfg:             cfg,
		Components:      component.NewRegistry(),
		gracefulTimeout: 15 * time.Second,
	}

	o := resolveOptions(opts)
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}

	// Logger: use custom if provided, otherwise init from config.
	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(&nav.Logging)
		app.Logger = logger.GetGlobalLogger()
	}

	metrics, err := observability.NewMetrics(observability.Meter(observability.TracerName))
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	app.Metrics = metrics

	app.wireNavigation(nav, o)

	if nav.Tracing.Enabled {
		if err := app.RegisterComponent(newTelemetry(nav)); err != nil {
			return nil, err
		}
	}
	if err := app.RegisterComponent(&navigation{svc: app.Router, store: app.Store}); err != nil {
		return nil, err
	}
	if nav.DeepLink.Enabled {
		app.DeepLink = app.newDeepLinkServer(nav)
		if err := app.RegisterComponent(app.DeepLink); err != nil {
			return nil, err
		}
	}

	app.Summary = NewSummary(nav.Name, nav.Version)
	if o.summaryOutput != nil {
		app.Summary.SetOutput(o.summaryOutput)
	}
	return app, nil
}

// wireNavigation builds the store, the router service and the window.
func (a *App[C]) wireNavigation(nav *config.NavConfig, o *appOptions) {
	policy := di.Overwrite
	if nav.Router.DuplicatePolicy == config.PolicyReject {
		policy = di.Reject
	}
	storeOpts := []di.StoreOption{
		di.WithLogger(a.Logger.WithComponent("di")),
		di.WithDuplicatePolicy(policy),
		di.WithMetrics(a.Metrics),
	}
	routerOpts := []router.Option{
		router.WithLogger(a.Logger.WithComponent("router")),
		router.WithMetrics(a.Metrics),
	}
	if o.failureHandler != nil {
		storeOpts = append(storeOpts, di.WithFailureHandler(o.failureHandler))
		routerOpts = append(routerOpts, router.WithFailureHandler(o.failureHandler))
	}

	a.Store = di.NewStore(storeOpts...)
	a.Router = router.NewService(a.Store, routerOpts...)
	a.Router.RegisterNavigator()
	a.Router.RegisterViewRouter()
	for _, scope := range nav.Router.Scopes {
		a.Router.RegisterScope(scope)
	}

	a.Window = ui.NewWindow(nil)
	di.Instance[*ui.Window](a.Store, a.Window)
}

// newDeepLinkServer mounts the deep-link handler, navigating from the
// window's visible controller, and the health endpoint.
func (a *App[C]) newDeepLinkServer(nav *config.NavConfig) *deeplink.Server {
	style, _ := router.StyleByName(nav.Router.DefaultStyle)
	h := &deeplink.Handler{
		Decoder:   a.Router,
		Navigator: a.Router,
		Root:      a.Window.Visible,
		Style:     style,
		Animated:  nav.Router.Animated,
		Metrics:   a.Metrics,
		Log:       a.Logger.WithComponent("deeplink"),
	}
	return deeplink.NewServer(nav.DeepLink,
		deeplink.WithServerLogger(a.Logger.WithComponent("deeplink")),
		deeplink.WithHandler(h),
		deeplink.WithHealth(a.Health),
	)
}

// RegisterComponent adds a component to the application's registry.
func (a *App[C]) RegisterComponent(c component.Component) error {
	return a.Components.Register(c)
}

// OnConfigure registers a callback to run during the configure phase.
// Use it to register route handlers, features and the root controller.
func (a *App[C]) OnConfigure(fn func(ctx context.Context, app *App[C]) error) {
	a.onConfigure = append(a.onConfigure, fn)
}

// Health aggregates the health of every registered component.
func (a *App[C]) Health(ctx context.Context) *observability.ServiceHealth {
	return a.Components.ServiceHealth(ctx, a.Name, a.Version)
}

// ReadyCheck verifies that no registered component is down.
func (a *App[C]) ReadyCheck(ctx context.Context) error {
	var unhealthy []string
	for _, h := range a.Components.HealthAll(ctx) {
		if h.Status != observability.HealthStatusUp {
			detail := h.Name + "=" + string(h.Status)
			if h.Message != "" {
				detail += "(" + h.Message + ")"
			}
			unhealthy = append(unhealthy, detail)
		}
	}
	if len(unhealthy) > 0 {
		return fmt.Errorf("unhealthy components: %v", unhealthy)
	}
	return nil
}

// Run executes the full application lifecycle:
// Initialize → OnStart hooks → Configure → ReadyCheck → OnReady hooks →
// Block on signal → OnStop hooks → Graceful Shutdown.
func (a *App[C]) Run(ctx context.Context) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	a.Logger.Info("Application ready, waiting for shutdown signal")
	a.WaitForSignal(ctx)

	return a.stop()
}

// RunTask executes a finite task with the full bootstrap lifecycle.
// Unlike Run, it does not block on shutdown signals: it runs task and shuts
// down when the task completes or the context is canceled.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	taskCtx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	taskErr := task(taskCtx)

	if stopErr := a.stop(); stopErr != nil {
		if taskErr != nil {
			return taskErr
		}
		return stopErr
	}
	return taskErr
}

// startup performs the initialization sequence shared by Run and RunTask.
func (a *App[C]) startup(ctx context.Context) error {
	start := time.Now()

	a.Logger.Info("Starting application", logger.Fields(
		"name", a.Name,
		"version", a.Version,
	))

	if err := a.initialize(ctx); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	if err := runHooks(ctx, a.onStart); err != nil {
		a.rollback()
		return fmt.Errorf("onStart hook failed: %w", err)
	}

	if err := a.configure(ctx); err != nil {
		a.rollback()
		return fmt.Errorf("configuration failed: %w", err)
	}

	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("Ready check reported issues", logger.Fields(logger.FieldError, err.Error()))
	}

	if err := runHooks(ctx, a.onReady); err != nil {
		a.rollback()
		return fmt.Errorf("onReady hook failed: %w", err)
	}

	a.Summary.SetStartupDuration(time.Since(start))
	a.DisplaySummary()
	return nil
}

// initialize starts all registered components (Phase 1).
func (a *App[C]) initialize(ctx context.Context) error {
	a.Logger.Info("Phase 1: Starting components")

	if err := a.Components.StartAll(ctx); err != nil {
		a.rollback()
		return fmt.Errorf("failed to start components: %w", err)
	}

	a.Logger.Info("Phase 1: All components started")
	return nil
}

// configure runs registered configuration callbacks (Phase 2).
func (a *App[C]) configure(ctx context.Context) error {
	if len(a.onConfigure) == 0 {
		return nil
	}

	a.Logger.Info("Phase 2: Running configuration callbacks", logger.Fields("count", len(a.onConfigure)))
	for _, fn := range a.onConfigure {
		if err := fn(ctx, a); err != nil {
			return err
		}
	}

	a.Logger.Info("Phase 2: Configuration complete")
	return nil
}

// rollback stops whatever started before a failed startup.
func (a *App[C]) rollback() {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()
	if err := a.Components.StopAll(ctx); err != nil {
		a.Logger.Error("Rollback completed with errors", logger.Fields(logger.FieldError, err.Error()))
	}
}

// DisplaySummary prints the startup summary with live component health,
// the navigation routes and the store's registrations.
func (a *App[C]) DisplaySummary() {
	a.Summary.DisplaySummary(a.Components, a.Router, a.Store)
}

// WaitForSignal blocks until an OS interrupt/term signal or context cancellation.
func (a *App[C]) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("Received shutdown signal, graceful shutdown starting", logger.Fields("signal", sig.String()))
		return sig
	case <-ctx.Done():
		a.Logger.Info("Context canceled, shutting down")
		return nil
	}
}

// Shutdown performs graceful shutdown. Use when managing your own lifecycle.
func (a *App[C]) Shutdown(ctx context.Context) error {
	return a.stop()
}

// stop runs the OnStop hooks and stops all components within the graceful
// timeout.
func (a *App[C]) stop() error {
	a.Logger.Info("Shutting down application", logger.Fields("timeout", a.gracefulTimeout.String()))

	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var shutdownErr error
	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("OnStop hook error", logger.Fields(logger.FieldError, err.Error()))
		shutdownErr = err
	}

	if err := a.Components.StopAll(ctx); err != nil {
		a.Logger.Error("Shutdown completed with errors", logger.Fields(logger.FieldError, err.Error()))
		shutdownErr = err
	}

	a.Logger.Info("Application shutdown complete")
	return shutdownErr
}
