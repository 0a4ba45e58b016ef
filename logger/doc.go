// Package logger provides structured logging for navkit using zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers. The container and the router each log through a
// named component logger:
//
//	log := logger.Get("router")
//	log.Debug("navigating", logger.Fields(logger.FieldRoute, "profile"))
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
package logger
