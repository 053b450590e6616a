package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors forming the engine's error taxonomy. Callers discriminate
// with errors.Is; the HTTP layer maps each to a status code.
var (
	// ErrValidation marks a missing or invalid required field. No write was
	// attempted.
	ErrValidation = goerr.New("validation failed")

	// ErrStaleState marks a compare-and-swap mismatch: the case moved since
	// the caller last read it. Nothing was written; reload and retry.
	ErrStaleState = goerr.New("case state is stale")

	// ErrEvidenceLimit marks a slot cardinality breach. The existing
	// documents are untouched.
	ErrEvidenceLimit = goerr.New("evidence slot limit exceeded")

	// ErrUploadFailure marks a blob-store error. The compound
	// upload-then-transition was aborted; the case is in its prior state.
	ErrUploadFailure = goerr.New("document upload failed")

	ErrNotFound  = goerr.New("resource not found")
	ErrForbidden = goerr.New("operation not permitted")
)

// Context keys for goerr values
const (
	CaseIDKey   = "case_id"
	ActionKey   = "action"
	StatusKey   = "status"
	ExpectedKey = "expected_status"
	RoleKey     = "role"
	SlotKey     = "slot"
)
