package ports

import (
	"context"
	"time"

	"github.com/skillbridge/exchange-system/internal/core/domain"
)

// CreateSessionInput carries all data needed to schedule a new session.
// TeacherID is always the authenticated actor.
type CreateSessionInput struct {
	TeacherID     string
	StudentID     string
	SkillID       string
	Title         string
	Description   string
	ScheduledDate time.Time
	Duration      int // minutes
	SessionType   domain.SessionType
	Location      string
	MeetingLink   string
}

// UpdateSessionInput is a partial update of session details. Nil fields are
// left untouched. Only the session's teacher may update.
type UpdateSessionInput struct {
	SessionID     string
	ActorID       string
	Title         *string
	Description   *string
	ScheduledDate *time.Time
	Duration      *int
	SessionType   *domain.SessionType
	Location      *string
	MeetingLink   *string
}

// CancelSessionInput cancels a session on behalf of a participant.
type CancelSessionInput struct {
	SessionID string
	ActorID   string
	Reason    string
}

// CompleteSessionInput marks a session completed and records the acting
// side's notes, rating and feedback. The other side's fields are untouched.
type CompleteSessionInput struct {
	SessionID string
	ActorID   string
	Notes     string
	Rating    int // 1-5, 0 = not rated
	Feedback  string
}

// ListSessionsInput carries all parameters for the session list endpoint.
type ListSessionsInput struct {
	UserID string
	Status string
	Role   string // optional: "teacher" or "student"
	Page   int
	Limit  int
}

// ListSessionsResult is returned by List.
type ListSessionsResult struct {
	Sessions   []*domain.Session
	Pagination Pagination
}

// SessionStats summarises one user's session history.
type SessionStats struct {
	Total            int64
	ByStatus         map[domain.SessionStatus]int64
	AvgTeacherRating float64 // rounded to one decimal, 0 when unrated
	AvgStudentRating float64
}

// SessionService drives the session lifecycle: eligibility checks, the
// conflict window, and role-gated status transitions.
type SessionService interface {
	Create(ctx context.Context, input CreateSessionInput) (*domain.Session, error)
	Get(ctx context.Context, sessionID, actorID string) (*domain.Session, error)
	List(ctx context.Context, input ListSessionsInput) (*ListSessionsResult, error)
	Update(ctx context.Context, input UpdateSessionInput) (*domain.Session, error)
	Confirm(ctx context.Context, sessionID, actorID string) (*domain.Session, error)
	Cancel(ctx context.Context, input CancelSessionInput) (*domain.Session, error)
	Complete(ctx context.Context, input CompleteSessionInput) (*domain.Session, error)
	Delete(ctx context.Context, sessionID, actorID string) error
	Stats(ctx context.Context, userID string) (*SessionStats, error)
}
