// Package apperr defines the closed set of error kinds the ledger core
// returns. Handlers match them with errors.As and translate to the API
// envelope; nothing in the core returns a bare string error for a
// caller-visible failure.
package apperr

import "fmt"

// ValidationError reports a malformed or missing field in a payload.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AuthorizationError reports a cross-tenant access attempt: the caller's
// tenant id does not match the target document.
type AuthorizationError struct {
	Resource string
	TenantID string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("tenant %s is not allowed to access %s", e.TenantID, e.Resource)
}

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ConsistencyWarning is non-fatal: a linked record that should exist is
// missing. The operation proceeds on the remaining side and the warning
// is logged, not returned to the caller.
type ConsistencyWarning struct {
	Detail string
}

func (e *ConsistencyWarning) Error() string {
	return "consistency warning: " + e.Detail
}

// Validation is shorthand for a *ValidationError.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// Authorization is shorthand for an *AuthorizationError.
func Authorization(resource, tenantID string) error {
	return &AuthorizationError{Resource: resource, TenantID: tenantID}
}

// NotFound is shorthand for a *NotFoundError.
func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}
