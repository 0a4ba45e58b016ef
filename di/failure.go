package di

import (
	"github.com/kbukum/navkit/errors"
	"github.com/kbukum/navkit/logger"
)

// FailureHandler receives the message of a contract violation.
type FailureHandler func(message string)

// DefaultFailureHandler logs the message and panics with it.
func DefaultFailureHandler(message string) {
	logger.Get("di").Error(message)
	panic(message)
}

// Report hands a contract violation to h, or to DefaultFailureHandler when h
// is nil.
func Report(h FailureHandler, code errors.ErrorCode, message string) {
	logger.Get("di").Debug("contract violation", logger.Fields("code", string(code)))
	if h == nil {
		h = DefaultFailureHandler
	}
	h(message)
}
