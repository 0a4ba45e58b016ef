package router

import (
	"testing"

	"github.com/kbukum/navkit/errors"
)

func TestDecodeAnyRoute(t *testing.T) {
	svc, _, _ := newTestService(t)

	tests := []struct {
		name    string
		data    string
		want    Route
		handler string
	}{
		{"struct payload", `{"identifier":"profile","route":{"user_id":"42"}}`, profileRoute{UserID: "42"}, "AppHandler"},
		{"null payload", `{"identifier":"settings","route":null}`, settingsRoute{}, "AppHandler"},
		{"missing payload", `{"identifier":"settings"}`, settingsRoute{}, "AppHandler"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			route, handler, err := svc.DecodeAnyRoute([]byte(tc.data))
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if route != tc.want {
				t.Errorf("got %#v, want %#v", route, tc.want)
			}
			if handler != tc.handler {
				t.Errorf("got handler %q, want %q", handler, tc.handler)
			}
		})
	}
}

func TestDecodeAnyRoutePointerType(t *testing.T) {
	svc, _, _ := newTestService(t)

	route, _, err := svc.DecodeAnyRoute([]byte(`{"identifier":"search","route":{"query":"go"}}`))
	if err != nil {
		t.Fatal(err)
	}
	p, ok := route.(*pointerRoute)
	if !ok || p.Query != "go" {
		t.Errorf("expected *pointerRoute{go}, got %#v", route)
	}
}

func TestDecodeAnyRouteErrors(t *testing.T) {
	svc, _, _ := newTestService(t)

	tests := []struct {
		name string
		data string
		code errors.ErrorCode
	}{
		{"malformed envelope", `{"identifier":`, errors.ErrCodeInvalidRoute},
		{"missing identifier", `{"route":{}}`, errors.ErrCodeInvalidRoute},
		{"bad identifier", `{"identifier":"9 lives"}`, errors.ErrCodeInvalidRoute},
		{"unhandled", `{"identifier":"checkout"}`, errors.ErrCodeRouteNotHandled},
		{"malformed payload", `{"identifier":"profile","route":"oops"}`, errors.ErrCodeInvalidRoute},
		{"invalid payload", `{"identifier":"profile","route":{}}`, errors.ErrCodeInvalidRoute},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			route, _, err := svc.DecodeAnyRoute([]byte(tc.data))
			if route != nil {
				t.Errorf("expected no route, got %#v", route)
			}
			if !errors.HasCode(err, tc.code) {
				t.Errorf("expected %s, got %v", tc.code, err)
			}
		})
	}
}

func TestDecodeAnyRoutePayloadDetail(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, _, err := svc.DecodeAnyRoute([]byte(`{"identifier":"profile","route":{}}`))
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected an AppError, got %v", err)
	}
	if appErr.Details["identifier"] != "profile" {
		t.Errorf("expected identifier detail, got %v", appErr.Details)
	}
}

func TestEncodeAnyRoute(t *testing.T) {
	svc, _, _ := newTestService(t)

	data, err := EncodeAnyRoute(profileRoute{UserID: "9"})
	if err != nil {
		t.Fatal(err)
	}
	route, _, err := svc.DecodeAnyRoute(data)
	if err != nil {
		t.Fatal(err)
	}
	if route != (profileRoute{UserID: "9"}) {
		t.Errorf("expected the encoded route back, got %#v", route)
	}
}
