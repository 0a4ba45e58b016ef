package router

import (
	"sort"

	"github.com/kbukum/navkit/errors"
	"github.com/kbukum/navkit/logger"
)

// RegisterScope makes name available to EnterScope. Registering a known
// scope again is a no-op.
func (s *Service) RegisterScope(name string) {
	s.mu.Lock()
	_, known := s.scopes[name]
	if !known {
		s.scopes[name] = 0
	}
	s.mu.Unlock()

	if !known {
		s.log.Debug("scope registered", logger.Fields(logger.FieldScope, name))
	}
}

// EnterScope activates name. Entering an active scope nests; each enter
// needs its own leave.
func (s *Service) EnterScope(name string) error {
	s.mu.Lock()
	depth, known := s.scopes[name]
	if known {
		s.scopes[name] = depth + 1
	}
	s.mu.Unlock()

	if !known {
		return errors.UnknownScope(name)
	}
	s.log.Debug("scope entered", logger.Fields(logger.FieldScope, name, "depth", depth+1))
	return nil
}

// LeaveScope undoes one EnterScope.
func (s *Service) LeaveScope(name string) error {
	s.mu.Lock()
	depth, known := s.scopes[name]
	if known && depth > 0 {
		s.scopes[name] = depth - 1
	}
	s.mu.Unlock()

	switch {
	case !known:
		return errors.UnknownScope(name)
	case depth == 0:
		return errors.ScopeNotEntered(name)
	}
	s.log.Debug("scope left", logger.Fields(logger.FieldScope, name, "depth", depth-1))
	return nil
}

// IsActive reports whether name has been entered more often than left.
func (s *Service) IsActive(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scopes[name] > 0
}

// ActiveScopes returns the active scope names, sorted.
func (s *Service) ActiveScopes() []string {
	s.mu.RLock()
	var active []string
	for name, depth := range s.scopes {
		if depth > 0 {
			active = append(active, name)
		}
	}
	s.mu.RUnlock()
	sort.Strings(active)
	return active
}
