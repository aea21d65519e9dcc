package domain

import "time"

// SessionStatus represents the lifecycle state of a teaching session.
type SessionStatus string

const (
	StatusPending    SessionStatus = "pending"
	StatusConfirmed  SessionStatus = "confirmed"
	StatusInProgress SessionStatus = "in-progress"
	StatusCompleted  SessionStatus = "completed"
	StatusCancelled  SessionStatus = "cancelled"
	// StatusNoShow is part of the stored enum but no transition sets it;
	// it can only appear through a direct status write.
	StatusNoShow SessionStatus = "no-show"
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[SessionStatus][]SessionStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// ActiveStatuses are the states that occupy a participant's calendar and
// therefore count toward scheduling conflicts.
var ActiveStatuses = []SessionStatus{StatusPending, StatusConfirmed, StatusInProgress}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the session can no longer change state.
func (s SessionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// SessionType is the delivery format of a session.
type SessionType string

const (
	SessionInPerson SessionType = "in-person"
	SessionOnline   SessionType = "online"
	SessionHybrid   SessionType = "hybrid"
)

const (
	MinSessionDuration = 15  // minutes
	MaxSessionDuration = 480 // minutes
)

// Cancellation records who cancelled a session, why, and when.
type Cancellation struct {
	CancelledBy string    `json:"cancelled_by" bson:"cancelled_by"`
	Reason      string    `json:"reason,omitempty" bson:"reason,omitempty"`
	CancelledAt time.Time `json:"cancelled_at" bson:"cancelled_at"`
}

// Session is the core aggregate root: a time-boxed teaching engagement between
// exactly two users around one skill. Teacher, student and skill are held as
// weak id references; the session never owns their lifecycle.
type Session struct {
	ID            string        `json:"id" bson:"_id,omitempty"`
	TeacherID     string        `json:"teacher_id" bson:"teacher_id"`
	StudentID     string        `json:"student_id" bson:"student_id"`
	SkillID       string        `json:"skill_id" bson:"skill_id"`
	Title         string        `json:"title" bson:"title"`
	Description   string        `json:"description" bson:"description"`
	ScheduledDate time.Time     `json:"scheduled_date" bson:"scheduled_date"`
	Duration      int           `json:"duration" bson:"duration"` // minutes
	SessionType   SessionType   `json:"session_type" bson:"session_type"`
	Location      string        `json:"location,omitempty" bson:"location,omitempty"`
	MeetingLink   string        `json:"meeting_link,omitempty" bson:"meeting_link,omitempty"`
	Status        SessionStatus `json:"status" bson:"status"`

	StartTime      *time.Time `json:"start_time,omitempty" bson:"start_time,omitempty"`
	EndTime        *time.Time `json:"end_time,omitempty" bson:"end_time,omitempty"`
	ActualDuration int        `json:"actual_duration,omitempty" bson:"actual_duration,omitempty"`

	TeacherNotes    string `json:"teacher_notes,omitempty" bson:"teacher_notes,omitempty"`
	StudentNotes    string `json:"student_notes,omitempty" bson:"student_notes,omitempty"`
	TeacherRating   int    `json:"teacher_rating,omitempty" bson:"teacher_rating,omitempty"`
	StudentRating   int    `json:"student_rating,omitempty" bson:"student_rating,omitempty"`
	TeacherFeedback string `json:"teacher_feedback,omitempty" bson:"teacher_feedback,omitempty"`
	StudentFeedback string `json:"student_feedback,omitempty" bson:"student_feedback,omitempty"`

	Cancellation *Cancellation `json:"cancellation,omitempty" bson:"cancellation,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// IsParticipant reports whether the given user is the session's teacher or student.
func (s *Session) IsParticipant(userID string) bool {
	return userID == s.TeacherID || userID == s.StudentID
}
