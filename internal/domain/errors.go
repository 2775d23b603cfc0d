package domain

import "errors"

var (
	// ErrForbidden is returned by the mutation pipeline when an apply is
	// attempted while the user's persona is PAUSED.
	ErrForbidden = errors.New("system paused")

	// ErrAuditWriteFailed means the mandatory audit entry could not be
	// persisted. No mutation may happen past this point.
	ErrAuditWriteFailed = errors.New("audit write failed")

	// ErrApplyFailed means the store rejected the mutation after the audit
	// entry was already persisted.
	ErrApplyFailed = errors.New("apply failed")

	// ErrSuggestionUnavailable marks a generator that is unreachable or
	// returned garbage. The pipeline degrades instead of aborting.
	ErrSuggestionUnavailable = errors.New("suggestion unavailable")

	ErrRecordNotFound = errors.New("record not found")
	ErrInvalidToken   = errors.New("invalid token")
)
