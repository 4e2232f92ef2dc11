// Package handlers defines HTTP-layer error codes used across all API
// endpoints of the five services.
//
// These symbolic constants are mapped to HTTP responses via the `fail()`
// helper and give clients a stable, machine-readable taxonomy alongside
// the human-readable messages.
//
// Conventions:
//   - Codes are lowercase, snake_case, and domain-agnostic unless noted.
//   - Generic codes (bad_request, not_found, conflict) mirror common HTTP
//     status semantics.
//   - Domain-specific codes mark failures that status alone cannot convey,
//     such as log_failed: the gateway's primary write succeeded but the
//     audit write did not.
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeCreateFailed        = "create_failed"
	ErrCodeListFailed          = "list_failed"
	ErrCodeDeleteFailed        = "delete_failed"
	ErrCodeCacheFailed         = "cache_failed"
	ErrCodeLogFailed           = "log_failed"
	ErrCodeUpstreamUnavailable = "upstream_unavailable"
)
