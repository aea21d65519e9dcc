package domain

import "errors"

// Validation (HTTP 400).
var (
	ErrMissingFields       = errors.New("missing required fields")
	ErrInvalidAvailability = errors.New("invalid weekly availability")
	ErrInvalidDuration     = errors.New("duration must be between 15 and 480 minutes")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrDuplicateSkillRef   = errors.New("duplicate skill reference")
)

// Not found (HTTP 404).
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrSkillNotFound   = errors.New("skill not found")
	ErrSessionNotFound = errors.New("session not found")
)

// Forbidden (HTTP 403).
var ErrForbidden = errors.New("access forbidden")

// Domain-rule conflicts. Surfaced as HTTP 400: the request was well formed
// but violates a scheduling or eligibility rule the caller can correct.
var (
	ErrSelfSession         = errors.New("teacher and student must be different users")
	ErrSkillMismatch       = errors.New("skill not offered by teacher or not sought by student")
	ErrScheduleConflict    = errors.New("session overlaps an existing active session")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrSessionNotCancelled = errors.New("only cancelled sessions can be deleted")
	ErrSkillExists         = errors.New("skill name already taken")
)

// Auth.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
)
