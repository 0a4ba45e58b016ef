package router

import (
	"bytes"
	"fmt"
	"reflect"

	jsoniter "github.com/json-iterator/go"

	"github.com/kbukum/navkit/errors"
	"github.com/kbukum/navkit/validation"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DecodeAnyRoute decodes an AnyRoute envelope into a value of the concrete
// type registered for its identifier. Struct routes are validated with their
// `validate` tags. Errors are *errors.AppError with code INVALID_ROUTE or
// ROUTE_NOT_HANDLED.
func (s *Service) DecodeAnyRoute(data []byte) (Route, string, error) {
	var env AnyRoute
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, "", errors.InvalidRoute("malformed envelope").WithCause(err)
	}
	if err := validation.Validate(env); err != nil {
		return nil, "", errors.InvalidRoute(err.Error()).WithCause(err)
	}

	s.mu.RLock()
	entry, ok := s.routes[env.Identifier]
	s.mu.RUnlock()
	if !ok {
		return nil, "", errors.RouteNotHandled(env.Identifier)
	}

	route, err := decodeRoute(entry.routeType, env.Route)
	if err != nil {
		return nil, "", err.WithDetail("identifier", env.Identifier)
	}
	return route, HandlerName(entry.handler), nil
}

func decodeRoute(t reflect.Type, payload []byte) (Route, *errors.AppError) {
	base := t
	if t.Kind() == reflect.Pointer {
		base = t.Elem()
	}
	ptr := reflect.New(base)

	if p := bytes.TrimSpace(payload); len(p) > 0 && !bytes.Equal(p, []byte("null")) {
		if err := json.Unmarshal(p, ptr.Interface()); err != nil {
			return nil, errors.InvalidRoute("malformed route payload").WithCause(err)
		}
	}
	if base.Kind() == reflect.Struct {
		if err := validation.Validate(ptr.Interface()); err != nil {
			return nil, errors.InvalidRoute(err.Error()).WithCause(err)
		}
	}

	v := ptr
	if t.Kind() != reflect.Pointer {
		v = ptr.Elem()
	}
	route, ok := v.Interface().(Route)
	if !ok {
		return nil, errors.InvalidRoute(fmt.Sprintf("%s is not a route", t))
	}
	return route, nil
}

// EncodeAnyRoute wraps route in an AnyRoute envelope.
func EncodeAnyRoute(route Route) ([]byte, error) {
	payload, err := json.Marshal(route)
	if err != nil {
		return nil, errors.InvalidRoute("unencodable route").WithCause(err)
	}
	return json.Marshal(AnyRoute{Identifier: route.Identifier(), Route: payload})
}
