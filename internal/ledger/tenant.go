package ledger

import (
	"strings"

	"github.com/Joshi-Yagnik/Financial-summer-project/internal/apperr"
)

// RequireTenant validates a caller-supplied tenant id and returns it
// trimmed. Every Service method calls this before touching storage.
func RequireTenant(tenantID string) (string, error) {
	id := strings.TrimSpace(tenantID)
	if id == "" {
		return "", apperr.Validation("tenantId", "must be a non-empty string")
	}
	return id, nil
}

// RequireTenantFor additionally checks the id against a caller identity
// when one is supplied.
func RequireTenantFor(tenantID, callerID string) (string, error) {
	id, err := RequireTenant(tenantID)
	if err != nil {
		return "", err
	}
	if callerID != "" && callerID != id {
		return "", apperr.Authorization("tenant", callerID)
	}
	return id, nil
}

// authorize re-verifies a loaded document's tenant against the caller.
// Reads are already tenant-filtered where possible; this is the check
// that turns a storage-level filter bypass into a hard failure.
func authorize(resource, docTenantID, tenantID string) error {
	if docTenantID != tenantID {
		return apperr.Authorization(resource, tenantID)
	}
	return nil
}
