// Package bootstrap wires a navkit application from its configuration.
//
// NewApp builds the dependency store, the router service (registered in the
// store as router.Navigator and router.AnyRouteDecoder), the view-router
// factory, the configured scopes and the window deep links navigate from.
// The telemetry exporters and the deep-link server are registered as
// components when enabled.
//
// # Quick Start
//
//	var cfg config.NavConfig
//	if err := config.LoadConfig("shop", &cfg); err != nil {
//	    log.Fatal(err)
//	}
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*config.NavConfig]) error {
//	    a.Router.RegisterRouteHandler(profile.Handler{})
//	    a.Window.SetRoot(home.Controller())
//	    return nil
//	})
//	if err := app.Run(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
package bootstrap
