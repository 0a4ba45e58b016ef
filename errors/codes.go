package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Programmer errors. These are contract violations reported through a
// failure handler rather than returned.
const (
	// ErrCodeUnregisteredType indicates a requested type has no factory.
	ErrCodeUnregisteredType ErrorCode = "UNREGISTERED_TYPE"
	// ErrCodeDoubleResolution indicates a dependency handle was resolved twice.
	ErrCodeDoubleResolution ErrorCode = "DOUBLE_RESOLUTION"
	// ErrCodeUnresolvedRead indicates a dependency handle was read before resolution.
	ErrCodeUnresolvedRead ErrorCode = "UNRESOLVED_READ"
	// ErrCodeDuplicateRegistration indicates a second registration under a rejecting policy.
	ErrCodeDuplicateRegistration ErrorCode = "DUPLICATE_REGISTRATION"
	// ErrCodeMissingCollaborator indicates the navigator or bound controller is absent at navigate time.
	ErrCodeMissingCollaborator ErrorCode = "MISSING_COLLABORATOR"
	// ErrCodePresentationFailed indicates a presentation style could not perform the transition.
	ErrCodePresentationFailed ErrorCode = "PRESENTATION_FAILED"
)

// Route errors
const (
	// ErrCodeRouteNotHandled indicates no handler owns the route identifier.
	ErrCodeRouteNotHandled ErrorCode = "ROUTE_NOT_HANDLED"
	// ErrCodeInvalidRoute indicates a serialized route could not be decoded or validated.
	ErrCodeInvalidRoute ErrorCode = "INVALID_ROUTE"
)

// Scope errors
const (
	// ErrCodeUnknownScope indicates the scope was never registered.
	ErrCodeUnknownScope ErrorCode = "UNKNOWN_SCOPE"
	// ErrCodeScopeNotEntered indicates a leave without a matching enter.
	ErrCodeScopeNotEntered ErrorCode = "SCOPE_NOT_ENTERED"
)

// Generic errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeServiceUnavailable indicates a collaborator is not ready yet.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var programmerCodes = map[ErrorCode]bool{
	ErrCodeUnregisteredType:      true,
	ErrCodeDoubleResolution:      true,
	ErrCodeUnresolvedRead:        true,
	ErrCodeDuplicateRegistration: true,
	ErrCodeMissingCollaborator:   true,
	ErrCodePresentationFailed:    true,
}

// IsProgrammerError returns true if the code names a contract violation.
func IsProgrammerError(code ErrorCode) bool {
	return programmerCodes[code]
}
