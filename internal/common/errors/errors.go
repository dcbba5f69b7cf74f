// Package errors provides standardized error handling for the matching engine.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Fatal call errors: the only conditions under which Rank returns an error.
	ErrCodeRFQNotFound            ErrorCode = "RFQ_NOT_FOUND"
	ErrCodeEmptyCandidateUniverse ErrorCode = "EMPTY_CANDIDATE_UNIVERSE"

	// Degraded-mode conditions. These are logged and surfaced via metrics,
	// never returned from Rank.
	ErrCodeCatalogUnavailable    ErrorCode = "CATALOG_UNAVAILABLE"
	ErrCodeSimilarityUnavailable ErrorCode = "SIMILARITY_UNAVAILABLE"
	ErrCodeSimilarityTimeout     ErrorCode = "SIMILARITY_TIMEOUT"
	ErrCodeCacheUnavailable      ErrorCode = "CACHE_UNAVAILABLE"

	// Business outcome, not a failure: the candidate is removed from ranking.
	ErrCodeComplianceBlocked ErrorCode = "COMPLIANCE_BLOCKED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewRFQNotFoundError creates a non-retryable error for an unknown or
// blank RFQ id.
func NewRFQNotFoundError(rfqID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRFQNotFound,
		Message:   "RFQ not found",
		Details:   rfqID,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmptyCandidateUniverseError signals that no category of the RFQ produced
// a single candidate.
func NewEmptyCandidateUniverseError(rfqID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyCandidateUniverse,
		Message:   "no candidates found for any requested category",
		Details:   rfqID,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogUnavailableError marks a failed catalog read for one category.
func NewCatalogUnavailableError(category string, cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogUnavailable,
		Message:   "catalog read failed, category scored as empty",
		Details:   category,
		Retryable: true,
		Metadata:  map[string]interface{}{"cause": cause.Error()},
		Timestamp: time.Now().UTC(),
	}
}

// NewSimilarityUnavailableError marks a skipped semantic blend.
func NewSimilarityUnavailableError(cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSimilarityUnavailable,
		Message:   "similarity search unavailable, heuristic score used unchanged",
		Retryable: true,
		Metadata:  map[string]interface{}{"cause": cause.Error()},
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError marks a failed redis cache read or write. The
// caller proceeds without the cache.
func NewCacheUnavailableError(key string, cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "cache unavailable, proceeding without it",
		Details:   key,
		Retryable: true,
		Metadata:  map[string]interface{}{"cause": cause.Error()},
		Timestamp: time.Now().UTC(),
	}
}

// NewSimilarityTimeoutError marks a semantic blend skipped on deadline.
func NewSimilarityTimeoutError(timeout string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSimilarityTimeout,
		Message:   "similarity search timed out, heuristic score used unchanged",
		Details:   timeout,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// IsCode reports whether err is a StandardError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	stdErr, ok := err.(*StandardError)
	return ok && stdErr.Code == code
}
