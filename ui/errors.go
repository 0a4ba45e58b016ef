package ui

import "errors"

var (
	// ErrNilController is returned when a transition is given no controller.
	ErrNilController = errors.New("ui: controller is nil")
	// ErrNoNavigation is returned when pushing from a controller outside a navigation stack.
	ErrNoNavigation = errors.New("ui: controller is not in a navigation stack")
	// ErrAlreadyPresenting is returned when presenting from a controller that already presents one.
	ErrAlreadyPresenting = errors.New("ui: controller is already presenting")
	// ErrNothingPresented is returned when dismissing with nothing presented.
	ErrNothingPresented = errors.New("ui: nothing to dismiss")
	// ErrAlreadyInHierarchy is returned when pushing or presenting a controller that is already shown.
	ErrAlreadyInHierarchy = errors.New("ui: controller is already in a hierarchy")
)
