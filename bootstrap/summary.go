package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kbukum/navkit/component"
	"github.com/kbukum/navkit/di"
	"github.com/kbukum/navkit/observability"
	"github.com/kbukum/navkit/router"
)

// Summary displays what the application started with.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	out             io.Writer
}

// NewSummary creates a summary printing to os.Stdout.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{
		serviceName: serviceName,
		version:     version,
		out:         os.Stdout,
	}
}

// SetOutput redirects the summary.
func (s *Summary) SetOutput(w io.Writer) {
	s.out = w
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// DisplaySummary prints the components, navigation routes, store
// registrations and HTTP routes, then live health from the registry.
// Any argument may be nil.
func (s *Summary) DisplaySummary(registry *component.Registry, svc *router.Service, store *di.Store) {
	w := s.out
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "🚀 %s v%s started in %.2fs\n\n", s.serviceName, s.version, s.startupDuration.Seconds())

	var components []component.Component
	if registry != nil {
		components = registry.All()
	}

	// Infrastructure
	var descs []component.Description
	for _, c := range components {
		if d, ok := c.(component.Describable); ok {
			desc := d.Describe()
			if desc.Name == "" {
				desc.Name = c.Name()
			}
			descs = append(descs, desc)
		}
	}
	if len(descs) > 0 {
		fmt.Fprintf(w, "📊 Infrastructure\n")
		for i, d := range descs {
			details := d.Details
			if d.Port > 0 {
				details = fmt.Sprintf("%s (:%d)", details, d.Port)
			}
			fmt.Fprintf(w, "   %s %s [%s]: %s\n", treePrefix(i, len(descs)), d.Name, d.Type, details)
		}
		fmt.Fprintf(w, "\n")
	} else if len(components) == 0 {
		fmt.Fprintf(w, "   └── No components registered\n")
	}

	// Navigation routes
	if svc != nil {
		ids := svc.Routes()
		if len(ids) > 0 {
			fmt.Fprintf(w, "🧭 Navigation Routes (%d)\n", len(ids))
			for i, id := range ids {
				name := "?"
				if h, ok := svc.HandlerFor(id); ok {
					name = router.HandlerName(h)
				}
				fmt.Fprintf(w, "   %s %s → %s\n", treePrefix(i, len(ids)), id, name)
			}
			fmt.Fprintf(w, "\n")
		}
		if scopes := svc.ActiveScopes(); len(scopes) > 0 {
			fmt.Fprintf(w, "🔒 Active Scopes: %s\n\n", strings.Join(scopes, ", "))
		}
	}

	// Store registrations
	if store != nil {
		regs := store.Registrations()
		if len(regs) > 0 {
			fmt.Fprintf(w, "💼 Registrations (%d)\n", len(regs))
			for i, r := range regs {
				fmt.Fprintf(w, "   %s %s %s (%s)\n", treePrefix(i, len(regs)), modeIcon(r.Mode), r.Key, r.Mode)
			}
			fmt.Fprintf(w, "\n")
		}
	}

	// HTTP routes
	var httpRoutes []component.Route
	for _, c := range components {
		if rp, ok := c.(component.RouteProvider); ok {
			httpRoutes = append(httpRoutes, rp.Routes()...)
		}
	}
	if len(httpRoutes) > 0 {
		fmt.Fprintf(w, "🌐 HTTP Routes (%d)\n", len(httpRoutes))
		for i, r := range httpRoutes {
			fmt.Fprintf(w, "   %s %-7s %s → %s\n", treePrefix(i, len(httpRoutes)), r.Method, r.Path, r.Handler)
		}
		fmt.Fprintf(w, "\n")
	}

	// Live health check
	if registry != nil {
		results := registry.HealthAll(context.Background())
		if len(results) > 0 {
			fmt.Fprintf(w, "🏥 Health Check\n")
			healthy := 0
			for i, h := range results {
				msg := ""
				if h.Message != "" {
					msg = fmt.Sprintf(" (%s)", h.Message)
				}
				fmt.Fprintf(w, "   %s %s %s: %s%s\n", treePrefix(i, len(results)), healthIcon(h.Status), h.Name, h.Status, msg)
				if h.Status == observability.HealthStatusUp {
					healthy++
				}
			}
			if healthy == len(results) {
				fmt.Fprintf(w, "\n✅ All components healthy (%d/%d)\n", healthy, len(results))
			} else {
				fmt.Fprintf(w, "\n⚠️  Some components have issues (%d/%d healthy)\n", healthy, len(results))
			}
		}
	}

	fmt.Fprintf(w, "\n")
}

func treePrefix(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func healthIcon(status observability.HealthStatus) string {
	switch status {
	case observability.HealthStatusUp:
		return "✅"
	case observability.HealthStatusDegraded:
		return "⚠️"
	case observability.HealthStatusDown:
		return "❌"
	default:
		return "❓"
	}
}

func modeIcon(mode di.RegistrationMode) string {
	switch mode {
	case di.ModeInstance:
		return "📌"
	case di.ModeLazy:
		return "⚡"
	default:
		return "🏭"
	}
}
