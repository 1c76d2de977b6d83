package chatbot

import "fmt"

// Code classifies turn failures. Transport maps codes to HTTP statuses for
// failures that happen before any fragment has been relayed.
type Code string

const (
	CodeUnauthorized           Code = "UNAUTHORIZED"
	CodeConversationNotFound   Code = "CONVERSATION_NOT_FOUND"
	CodeEntitlementUnavailable Code = "ENTITLEMENT_UNAVAILABLE"
	CodeQuotaExceeded          Code = "QUOTA_EXCEEDED"
	CodePersistenceFailure     Code = "PERSISTENCE_FAILURE"
	CodeBackendFailure         Code = "BACKEND_FAILURE"
	CodeFinalizationFailure    Code = "FINALIZATION_FAILURE"
)

// Error is a classified turn failure.
type Error struct {
	Code   Code
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("chatbot: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("chatbot: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(code Code, reason string, err error) *Error {
	return &Error{Code: code, Reason: reason, Err: err}
}
