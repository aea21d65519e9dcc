package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createSessionRequest struct {
	StudentID     string    `json:"student_id"     validate:"required"`
	SkillID       string    `json:"skill_id"       validate:"required"`
	Title         string    `json:"title"          validate:"required"`
	Description   string    `json:"description"    validate:"required"`
	ScheduledDate time.Time `json:"scheduled_date" validate:"required"`
	Duration      int       `json:"duration"       validate:"required"`
	SessionType   string    `json:"session_type"   validate:"required,oneof=in-person online hybrid"`
	Location      string    `json:"location"`
	MeetingLink   string    `json:"meeting_link"`
}

type updateSessionRequest struct {
	Title         *string    `json:"title,omitempty"`
	Description   *string    `json:"description,omitempty"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	Duration      *int       `json:"duration,omitempty"`
	SessionType   *string    `json:"session_type,omitempty" validate:"omitempty,oneof=in-person online hybrid"`
	Location      *string    `json:"location,omitempty"`
	MeetingLink   *string    `json:"meeting_link,omitempty"`
}

type cancelSessionRequest struct {
	Reason string `json:"reason"`
}

type completeSessionRequest struct {
	Notes    string `json:"notes"`
	Rating   int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Feedback string `json:"feedback"`
}

// --- Response types ---
// These are intentionally separate from domain types so the JSON contract is
// not coupled to internal changes.

type cancellationResponse struct {
	CancelledBy string    `json:"cancelled_by"`
	Reason      string    `json:"reason,omitempty"`
	CancelledAt time.Time `json:"cancelled_at"`
}

type sessionResponse struct {
	ID            string `json:"id"`
	TeacherID     string `json:"teacher_id"`
	StudentID     string `json:"student_id"`
	SkillID       string `json:"skill_id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	ScheduledDate string `json:"scheduled_date"`
	Duration      int    `json:"duration"`
	SessionType   string `json:"session_type"`
	Location      string `json:"location,omitempty"`
	MeetingLink   string `json:"meeting_link,omitempty"`
	Status        string `json:"status"`

	StartTime      *time.Time `json:"start_time,omitempty"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	ActualDuration int        `json:"actual_duration,omitempty"`

	TeacherNotes    string `json:"teacher_notes,omitempty"`
	StudentNotes    string `json:"student_notes,omitempty"`
	TeacherRating   int    `json:"teacher_rating,omitempty"`
	StudentRating   int    `json:"student_rating,omitempty"`
	TeacherFeedback string `json:"teacher_feedback,omitempty"`
	StudentFeedback string `json:"student_feedback,omitempty"`

	Cancellation *cancellationResponse `json:"cancellation,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

type listSessionsResponse struct {
	Sessions   []sessionResponse  `json:"sessions"`
	Pagination paginationResponse `json:"pagination"`
}

type sessionStatsResponse struct {
	Total            int64            `json:"total"`
	ByStatus         map[string]int64 `json:"by_status"`
	AvgTeacherRating float64          `json:"avg_teacher_rating"`
	AvgStudentRating float64          `json:"avg_student_rating"`
}
