package ui

import "sync"

// Window holds the root controller of the screen hierarchy.
type Window struct {
	mu   sync.RWMutex
	root *Controller
}

// NewWindow creates a window showing root, which may be nil.
func NewWindow(root *Controller) *Window {
	return &Window{root: root}
}

// SetRoot replaces the root controller.
func (w *Window) SetRoot(c *Controller) {
	w.mu.Lock()
	w.root = c
	w.mu.Unlock()
}

// Root returns the root controller, or nil.
func (w *Window) Root() *Controller {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.root
}

// Visible returns the controller currently on screen: the end of the modal
// chain from the root, or the top of its navigation stack.
func (w *Window) Visible() *Controller {
	c := w.Root()
	if c == nil {
		return nil
	}
	for {
		if c.presented != nil {
			c = c.presented
			continue
		}
		if n := c.navigation; n != nil && n.Top() != c {
			c = n.Top()
			continue
		}
		return c
	}
}
