package deeplink

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kbukum/navkit/config"
	"github.com/kbukum/navkit/logger"
	"github.com/kbukum/navkit/observability"
)

func TestHealthEndpoint(t *testing.T) {
	tests := []struct {
		name   string
		status observability.HealthStatus
		code   int
	}{
		{"up", observability.HealthStatusUp, http.StatusOK},
		{"degraded", observability.HealthStatusDegraded, http.StatusOK},
		{"down", observability.HealthStatusDown, http.StatusServiceUnavailable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewServer(config.DeepLinkConfig{}, WithServerLogger(logger.Nop()),
				WithHealth(func(ctx context.Context) *observability.ServiceHealth {
					sh := observability.NewServiceHealth("navkit", "1.0.0")
					sh.AddComponent(observability.Health{Name: "router", Status: tc.status})
					return sh
				}))

			rr := httptest.NewRecorder()
			s.Engine().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))

			if rr.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rr.Code)
			}
			var body observability.ServiceHealth
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Status != tc.status || body.Service != "navkit" {
				t.Errorf("unexpected body %+v", body)
			}
		})
	}
}

func TestServerLifecycle(t *testing.T) {
	s := NewServer(config.DeepLinkConfig{Addr: "127.0.0.1:0"}, WithServerLogger(logger.Nop()),
		WithHealth(func(ctx context.Context) *observability.ServiceHealth {
			return observability.NewServiceHealth("navkit", "1.0.0")
		}))

	if h := s.CheckHealth(context.Background()); h.Status != observability.HealthStatusDown {
		t.Errorf("expected down before Start, got %s", h.Status)
	}
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if h := s.CheckHealth(context.Background()); h.Status != observability.HealthStatusUp {
		t.Errorf("expected up after Start, got %s", h.Status)
	}
	if s.Addr() == "127.0.0.1:0" {
		t.Error("expected the bound address")
	}

	resp, err := http.Get("http://" + s.Addr() + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if h := s.CheckHealth(context.Background()); h.Status != observability.HealthStatusDown {
		t.Errorf("expected down after Stop, got %s", h.Status)
	}
}

func TestServerStartBindError(t *testing.T) {
	first := NewServer(config.DeepLinkConfig{Addr: "127.0.0.1:0"}, WithServerLogger(logger.Nop()))
	if err := first.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer first.Stop(context.Background())

	second := NewServer(config.DeepLinkConfig{Addr: first.Addr()}, WithServerLogger(logger.Nop()))
	if err := second.Start(context.Background()); err == nil {
		second.Stop(context.Background())
		t.Fatal("expected a bind error for an address in use")
	}
}

func TestServerRoutesAndDescribe(t *testing.T) {
	f := newFixture(t, profileHandler{})

	routes := f.server.Routes()
	if len(routes) != 2 {
		t.Fatalf("expected 2 routes, got %+v", routes)
	}
	if routes[0].Method != http.MethodPost || routes[0].Path != "/deeplinks" {
		t.Errorf("unexpected first route %+v", routes[0])
	}
	if routes[1].Method != http.MethodGet || routes[1].Path != "/healthz" {
		t.Errorf("unexpected second route %+v", routes[1])
	}

	d := f.server.Describe()
	if d.Type != "server" || d.Details != "127.0.0.1:0" {
		t.Errorf("unexpected description %+v", d)
	}
	if f.server.Name() != "deeplink-server" {
		t.Errorf("unexpected name %q", f.server.Name())
	}
}
