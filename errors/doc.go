// Package errors provides the structured error type used across navkit.
//
// Two families of failure exist. Programmer errors (an unregistered type, a
// dependency resolved twice, a router used before it has what it needs) are
// reported through a failure handler and halt by default; their codes live
// here so log lines and tests can name them. Runtime input errors (a deep
// link that does not decode, an unknown scope) are returned as *AppError
// and carry an HTTP status for the deep-link endpoint.
package errors
