package ports

import (
	"context"
	"time"

	"github.com/skillbridge/exchange-system/internal/core/domain"
)

// ListSessionsFilter carries all query parameters for listing a user's sessions.
type ListSessionsFilter struct {
	UserID string // participant (teacher or student)
	Role   string // optional: "teacher" or "student" restricts which side
	Status string // optional: filter by session status
	Page   int    // 1-based
	Limit  int    // max rows per page (capped by the service)
}

// SessionRepository defines persistence operations for sessions.
type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) error
	FindByID(ctx context.Context, id string) (*domain.Session, error)

	// FindConflicting returns sessions in an active status (pending, confirmed,
	// in-progress) that involve userID on either side and whose scheduled date
	// lies within [from, to], bounds inclusive.
	FindConflicting(ctx context.Context, userID string, from, to time.Time) ([]*domain.Session, error)

	// List returns a page of sessions matching filter and the total count.
	List(ctx context.Context, filter ListSessionsFilter) ([]*domain.Session, int64, error)

	// Update replaces the stored session document.
	Update(ctx context.Context, s *domain.Session) error

	// Delete removes the session. The service layer only calls this for
	// cancelled sessions.
	Delete(ctx context.Context, id string) error

	// CountByStatus groups the user's sessions (either side) by status.
	CountByStatus(ctx context.Context, userID string) (map[domain.SessionStatus]int64, error)

	// AverageRating computes the mean rating recorded on the user's completed
	// sessions: the teacher-side rating when asTeacher is true, otherwise the
	// student-side rating. Sessions without a rating are excluded; the result
	// is 0 when no rated session exists.
	AverageRating(ctx context.Context, userID string, asTeacher bool) (float64, error)
}
