package ui

import (
	"github.com/kbukum/navkit/logger"
)

// Navigation is a stack of controllers. The bottom controller is the root
// and is never popped.
type Navigation struct {
	controllers []*Controller
}

// NewNavigation creates a stack with root at the bottom.
func NewNavigation(root *Controller) *Navigation {
	n := &Navigation{controllers: make([]*Controller, 0, 4)}
	if root != nil {
		root.navigation = n
		n.controllers = append(n.controllers, root)
	}
	return n
}

// Push adds c on top of the stack and then calls completion, if any.
func (n *Navigation) Push(c *Controller, animated bool, completion func()) error {
	if c == nil {
		return ErrNilController
	}
	if c.navigation != nil || c.presenting != nil {
		return ErrAlreadyInHierarchy
	}
	c.navigation = n
	n.controllers = append(n.controllers, c)

	logger.Get("ui").Debug("pushed", logger.Fields(
		logger.FieldControllerID, c.id.String(),
		"depth", len(n.controllers),
		logger.FieldAnimated, animated,
	))
	if completion != nil {
		completion()
	}
	return nil
}

// Pop removes and returns the top controller. It returns nil when only the
// root is left.
func (n *Navigation) Pop(animated bool) *Controller {
	if len(n.controllers) <= 1 {
		return nil
	}
	top := n.controllers[len(n.controllers)-1]
	n.controllers = n.controllers[:len(n.controllers)-1]
	top.navigation = nil

	logger.Get("ui").Debug("popped", logger.Fields(
		logger.FieldControllerID, top.id.String(),
		logger.FieldAnimated, animated,
	))
	return top
}

// PopToRoot removes every controller above the root and returns them,
// bottom first.
func (n *Navigation) PopToRoot(animated bool) []*Controller {
	if len(n.controllers) <= 1 {
		return nil
	}
	popped := append([]*Controller(nil), n.controllers[1:]...)
	for _, c := range popped {
		c.navigation = nil
	}
	n.controllers = n.controllers[:1]
	logger.Get("ui").Debug("popped to root", logger.Fields("count", len(popped), logger.FieldAnimated, animated))
	return popped
}

// Top returns the top controller, or nil for an empty stack.
func (n *Navigation) Top() *Controller {
	if len(n.controllers) == 0 {
		return nil
	}
	return n.controllers[len(n.controllers)-1]
}

// Root returns the bottom controller, or nil for an empty stack.
func (n *Navigation) Root() *Controller {
	if len(n.controllers) == 0 {
		return nil
	}
	return n.controllers[0]
}

// Len returns the number of controllers on the stack.
func (n *Navigation) Len() int { return len(n.controllers) }

// Controllers returns a copy of the stack, bottom first.
func (n *Navigation) Controllers() []*Controller {
	return append([]*Controller(nil), n.controllers...)
}
