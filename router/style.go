package router

import (
	"github.com/kbukum/navkit/ui"
)

// PresentationStyle performs the transition from one controller to another.
// The set is open; StyleFunc adapts custom transitions.
type PresentationStyle interface {
	Present(dest, from *ui.Controller, animated bool, completion func()) error
	Name() string
}

// Push pushes the destination onto the source's navigation stack.
type Push struct{}

func (Push) Name() string { return "push" }

func (Push) Present(dest, from *ui.Controller, animated bool, completion func()) error {
	nav := from.Navigation()
	if nav == nil {
		return ui.ErrNoNavigation
	}
	return nav.Push(dest, animated, completion)
}

// Present shows the destination modally. With Embed set, the destination
// becomes the root of a new navigation stack so it can push further screens.
type Present struct {
	Embed bool
}

func (Present) Name() string { return "present" }

func (p Present) Present(dest, from *ui.Controller, animated bool, completion func()) error {
	if err := from.CanPresent(dest); err != nil {
		return err
	}
	if p.Embed && dest.Navigation() == nil {
		ui.NewNavigation(dest)
	}
	return from.Present(dest, animated, completion)
}

// StyleFunc adapts a function to PresentationStyle.
type StyleFunc struct {
	StyleName  string
	Transition func(dest, from *ui.Controller, animated bool, completion func()) error
}

func (s StyleFunc) Name() string { return s.StyleName }

func (s StyleFunc) Present(dest, from *ui.Controller, animated bool, completion func()) error {
	return s.Transition(dest, from, animated, completion)
}

// StyleByName returns the built-in style called name.
func StyleByName(name string) (PresentationStyle, bool) {
	switch name {
	case "push":
		return Push{}, true
	case "present":
		return Present{}, true
	}
	return nil, false
}
