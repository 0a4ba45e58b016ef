package ui

import (
	"github.com/google/uuid"

	"github.com/kbukum/navkit/logger"
)

// Controller hosts a View and takes part in navigation and presentation.
type Controller struct {
	id    uuid.UUID
	root  View
	Title string

	navigation *Navigation
	presenting *Controller
	presented  *Controller
}

// NewHostingController wraps root in a new controller.
func NewHostingController(root View) *Controller {
	return &Controller{id: uuid.New(), root: root}
}

// ID returns the controller's identity.
func (c *Controller) ID() uuid.UUID { return c.id }

// RootView returns the hosted view.
func (c *Controller) RootView() View { return c.root }

// Render renders the hosted view, or "" when there is none.
func (c *Controller) Render() string {
	if c.root == nil {
		return ""
	}
	return c.root.Render()
}

// Navigation returns the stack c belongs to, or nil.
func (c *Controller) Navigation() *Navigation { return c.navigation }

// Presented returns the controller c presents modally, or nil.
func (c *Controller) Presented() *Controller { return c.presented }

// Presenting returns the controller that presented c, or nil.
func (c *Controller) Presenting() *Controller { return c.presenting }

// Present shows dest modally over c and then calls completion, if any.
func (c *Controller) Present(dest *Controller, animated bool, completion func()) error {
	if err := c.CanPresent(dest); err != nil {
		return err
	}
	c.presented = dest
	dest.presenting = c

	logger.Get("ui").Debug("presented", logger.Fields(
		logger.FieldControllerID, dest.id.String(),
		"from", c.id.String(),
		logger.FieldAnimated, animated,
	))
	if completion != nil {
		completion()
	}
	return nil
}

// CanPresent reports the error Present would return for dest without
// changing either controller.
func (c *Controller) CanPresent(dest *Controller) error {
	if dest == nil {
		return ErrNilController
	}
	if c.presented != nil {
		return ErrAlreadyPresenting
	}
	// A controller may be presented as the root of its own stack, not from inside one.
	if dest == c || dest.presenting != nil || (dest.navigation != nil && dest.navigation.Root() != dest) {
		return ErrAlreadyInHierarchy
	}
	return nil
}

// Dismiss removes the controller c presents, or c itself when c was
// presented and presents nothing, then calls completion, if any.
func (c *Controller) Dismiss(animated bool, completion func()) error {
	presenter, dismissed := c, c.presented
	if dismissed == nil {
		presenter, dismissed = c.presenting, c
	}
	if presenter == nil {
		return ErrNothingPresented
	}
	// Anything the dismissed controller presents goes with it.
	for p := dismissed; p != nil; {
		next := p.presented
		p.presented = nil
		if next != nil {
			next.presenting = nil
		}
		p = next
	}
	presenter.presented = nil
	dismissed.presenting = nil

	logger.Get("ui").Debug("dismissed", logger.Fields(
		logger.FieldControllerID, dismissed.id.String(),
		logger.FieldAnimated, animated,
	))
	if completion != nil {
		completion()
	}
	return nil
}
