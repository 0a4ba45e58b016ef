// Package deeplink accepts serialized routes over HTTP and navigates to them.
//
// A deep link is an AnyRoute envelope posted to /deeplinks:
//
//	POST /deeplinks
//	{"identifier": "profile", "route": {"user_id": "42"}}
//
// The Handler decodes it with the router's AnyRouteDecoder and navigates
// from the currently visible controller. Server hosts the handler on a gin
// engine and runs as a component.Component.
package deeplink
