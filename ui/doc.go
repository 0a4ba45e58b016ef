// Package ui is a headless screen container: hosting controllers around
// declarative views, navigation stacks and modal presentation.
//
// It gives the router something to present from and to present, without a
// toolkit. Transitions complete synchronously; the animated flag is logged
// and otherwise ignored.
//
// Controllers and navigation stacks are not safe for concurrent use. Callers
// serialize transitions the way a UI main thread would. Window is the
// exception; it may be read from any goroutine.
package ui
