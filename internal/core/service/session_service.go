package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/skillbridge/exchange-system/internal/core/domain"
	"github.com/skillbridge/exchange-system/internal/core/ports"
)

// SessionService validates, creates and transitions sessions. All
// cross-request coordination goes through the session repository; the
// conflict check is check-then-act, not transactional.
type SessionService struct {
	sessions ports.SessionRepository
	users    ports.UserRepository
	skills   ports.SkillRepository
	notify   ports.NotificationSink
	logger   zerolog.Logger
}

func NewSessionService(
	sessions ports.SessionRepository,
	users ports.UserRepository,
	skills ports.SkillRepository,
	notify ports.NotificationSink,
	logger zerolog.Logger,
) *SessionService {
	return &SessionService{
		sessions: sessions,
		users:    users,
		skills:   skills,
		notify:   notify,
		logger:   logger,
	}
}

// Create schedules a new session with the acting user as teacher. The skill
// must be offered by the teacher and sought by the student, and neither
// participant may have an active session within the proposed duration before
// or after the scheduled date.
func (s *SessionService) Create(ctx context.Context, input ports.CreateSessionInput) (*domain.Session, error) {
	if input.StudentID == "" || input.SkillID == "" || input.Title == "" ||
		input.Description == "" || input.ScheduledDate.IsZero() || input.Duration == 0 {
		return nil, domain.ErrMissingFields
	}
	if input.Duration < domain.MinSessionDuration || input.Duration > domain.MaxSessionDuration {
		return nil, domain.ErrInvalidDuration
	}
	if input.TeacherID == input.StudentID {
		return nil, domain.ErrSelfSession
	}

	teacher, err := s.users.FindByID(ctx, input.TeacherID)
	if err != nil {
		return nil, fmt.Errorf("create session: teacher: %w", err)
	}
	student, err := s.users.FindByID(ctx, input.StudentID)
	if err != nil {
		return nil, fmt.Errorf("create session: student: %w", err)
	}
	skill, err := s.skills.FindByID(ctx, input.SkillID)
	if err != nil {
		return nil, fmt.Errorf("create session: skill: %w", err)
	}

	// Double-sided eligibility: the teacher must offer the skill and the
	// student must be seeking it.
	if !teacher.HasOffered(skill.ID) || !student.HasSeeking(skill.ID) {
		return nil, domain.ErrSkillMismatch
	}

	if err := s.checkConflicts(ctx, input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &domain.Session{
		TeacherID:     teacher.ID,
		StudentID:     student.ID,
		SkillID:       skill.ID,
		Title:         input.Title,
		Description:   input.Description,
		ScheduledDate: input.ScheduledDate,
		Duration:      input.Duration,
		SessionType:   input.SessionType,
		Location:      input.Location,
		MeetingLink:   input.MeetingLink,
		Status:        domain.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		s.logger.Error().Err(err).Str("teacher_id", teacher.ID).Msg("failed to create session")
		return nil, err
	}

	s.logger.Info().
		Str("session_id", session.ID).
		Str("teacher_id", teacher.ID).
		Str("student_id", student.ID).
		Str("skill_id", skill.ID).
		Msg("session created")

	// Fire-and-forget: delivery failure never rolls back the creation.
	s.notify.Enqueue(domain.Notification{
		Kind:           domain.NotifySessionCreated,
		SessionID:      session.ID,
		RecipientID:    student.ID,
		RecipientName:  student.Name,
		RecipientEmail: student.Email,
		SessionTitle:   session.Title,
		ScheduledDate:  session.ScheduledDate,
		EmittedAt:      now,
	})

	return session, nil
}

// checkConflicts rejects the proposal when either participant already has an
// active session scheduled within the proposed duration before or after the
// proposed date. The window is symmetric and bounds are inclusive.
func (s *SessionService) checkConflicts(ctx context.Context, input ports.CreateSessionInput) error {
	window := time.Duration(input.Duration) * time.Minute
	from := input.ScheduledDate.Add(-window)
	to := input.ScheduledDate.Add(window)

	for _, participant := range []string{input.TeacherID, input.StudentID} {
		conflicts, err := s.sessions.FindConflicting(ctx, participant, from, to)
		if err != nil {
			return fmt.Errorf("create session: conflict check: %w", err)
		}
		if len(conflicts) > 0 {
			s.logger.Info().
				Str("participant_id", participant).
				Time("scheduled_date", input.ScheduledDate).
				Int("duration", input.Duration).
				Msg("session rejected: scheduling conflict")
			return domain.ErrScheduleConflict
		}
	}
	return nil
}

// Get returns one session; only participants may see it.
func (s *SessionService) Get(ctx context.Context, sessionID, actorID string) (*domain.Session, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsParticipant(actorID) {
		return nil, domain.ErrForbidden
	}
	return session, nil
}

// List returns a page of the user's sessions.
func (s *SessionService) List(ctx context.Context, input ports.ListSessionsInput) (*ports.ListSessionsResult, error) {
	page, limit := normalizePage(input.Page, input.Limit)

	sessions, total, err := s.sessions.List(ctx, ports.ListSessionsFilter{
		UserID: input.UserID,
		Role:   input.Role,
		Status: input.Status,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	return &ports.ListSessionsResult{
		Sessions:   sessions,
		Pagination: newPagination(total, page, limit),
	}, nil
}

// Update applies a partial details update. Only the teacher may update, and
// only before the session reaches a terminal state. The overlap window is
// not re-checked against a new date or duration.
func (s *SessionService) Update(ctx context.Context, input ports.UpdateSessionInput) (*domain.Session, error) {
	session, err := s.sessions.FindByID(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if input.ActorID != session.TeacherID {
		return nil, domain.ErrForbidden
	}
	if session.Status.IsTerminal() {
		return nil, fmt.Errorf("update session: %w (status %s)", domain.ErrInvalidTransition, session.Status)
	}

	if input.Duration != nil {
		if *input.Duration < domain.MinSessionDuration || *input.Duration > domain.MaxSessionDuration {
			return nil, domain.ErrInvalidDuration
		}
		session.Duration = *input.Duration
	}
	if input.Title != nil {
		session.Title = *input.Title
	}
	if input.Description != nil {
		session.Description = *input.Description
	}
	if input.ScheduledDate != nil {
		session.ScheduledDate = *input.ScheduledDate
	}
	if input.SessionType != nil {
		session.SessionType = *input.SessionType
	}
	if input.Location != nil {
		session.Location = *input.Location
	}
	if input.MeetingLink != nil {
		session.MeetingLink = *input.MeetingLink
	}
	session.UpdatedAt = time.Now().UTC()

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	return session, nil
}

// Confirm moves a pending session to confirmed. Only the session's student
// may confirm; the teacher is notified on success.
func (s *SessionService) Confirm(ctx context.Context, sessionID, actorID string) (*domain.Session, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if actorID != session.StudentID {
		return nil, domain.ErrForbidden
	}
	if !session.Status.CanTransitionTo(domain.StatusConfirmed) {
		return nil, fmt.Errorf("confirm session: %w (from %s)", domain.ErrInvalidTransition, session.Status)
	}

	session.Status = domain.StatusConfirmed
	session.UpdatedAt = time.Now().UTC()
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("confirm session: %w", err)
	}

	s.logger.Info().Str("session_id", session.ID).Msg("session confirmed")

	if teacher, err := s.users.FindByID(ctx, session.TeacherID); err != nil {
		s.logger.Warn().Err(err).Str("session_id", session.ID).Msg("confirm notification skipped")
	} else {
		s.notify.Enqueue(domain.Notification{
			Kind:           domain.NotifySessionConfirmed,
			SessionID:      session.ID,
			RecipientID:    teacher.ID,
			RecipientName:  teacher.Name,
			RecipientEmail: teacher.Email,
			SessionTitle:   session.Title,
			ScheduledDate:  session.ScheduledDate,
			EmittedAt:      session.UpdatedAt,
		})
	}

	return session, nil
}

// Cancel moves a non-terminal session to cancelled, recording who cancelled,
// why, and when. Either participant may cancel.
func (s *SessionService) Cancel(ctx context.Context, input ports.CancelSessionInput) (*domain.Session, error) {
	session, err := s.sessions.FindByID(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsParticipant(input.ActorID) {
		return nil, domain.ErrForbidden
	}
	if session.Status.IsTerminal() {
		return nil, fmt.Errorf("cancel session: %w (from %s)", domain.ErrInvalidTransition, session.Status)
	}

	now := time.Now().UTC()
	session.Status = domain.StatusCancelled
	session.Cancellation = &domain.Cancellation{
		CancelledBy: input.ActorID,
		Reason:      input.Reason,
		CancelledAt: now,
	}
	session.UpdatedAt = now

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("cancel session: %w", err)
	}

	s.logger.Info().
		Str("session_id", session.ID).
		Str("cancelled_by", input.ActorID).
		Msg("session cancelled")

	return session, nil
}

// Complete marks a confirmed or in-progress session completed and records
// the acting side's notes, rating and feedback. The other side's fields are
// never touched. When a start time was recorded, the actual duration in
// minutes is derived from it.
func (s *SessionService) Complete(ctx context.Context, input ports.CompleteSessionInput) (*domain.Session, error) {
	if input.Rating != 0 && (input.Rating < 1 || input.Rating > 5) {
		return nil, domain.ErrInvalidRating
	}

	session, err := s.sessions.FindByID(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsParticipant(input.ActorID) {
		return nil, domain.ErrForbidden
	}
	if !session.Status.CanTransitionTo(domain.StatusCompleted) {
		return nil, fmt.Errorf("complete session: %w (from %s)", domain.ErrInvalidTransition, session.Status)
	}

	if input.ActorID == session.TeacherID {
		session.TeacherNotes = input.Notes
		session.TeacherRating = input.Rating
		session.TeacherFeedback = input.Feedback
	} else {
		session.StudentNotes = input.Notes
		session.StudentRating = input.Rating
		session.StudentFeedback = input.Feedback
	}

	now := time.Now().UTC()
	session.Status = domain.StatusCompleted
	session.EndTime = &now
	if session.StartTime != nil {
		session.ActualDuration = int(math.Round(now.Sub(*session.StartTime).Minutes()))
	}
	session.UpdatedAt = now

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("complete session: %w", err)
	}

	s.logger.Info().Str("session_id", session.ID).Msg("session completed")

	return session, nil
}

// Delete removes a session permanently. Only cancelled sessions may be
// deleted, and only by a participant.
func (s *SessionService) Delete(ctx context.Context, sessionID, actorID string) error {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if !session.IsParticipant(actorID) {
		return domain.ErrForbidden
	}
	if session.Status != domain.StatusCancelled {
		return domain.ErrSessionNotCancelled
	}
	return s.sessions.Delete(ctx, sessionID)
}

// Stats returns the user's session counts by status and the average ratings
// recorded on their completed sessions, rounded to one decimal.
func (s *SessionService) Stats(ctx context.Context, userID string) (*ports.SessionStats, error) {
	counts, err := s.sessions.CountByStatus(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("session stats: %w", err)
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	avgTeacher, err := s.sessions.AverageRating(ctx, userID, true)
	if err != nil {
		return nil, fmt.Errorf("session stats: teacher rating: %w", err)
	}
	avgStudent, err := s.sessions.AverageRating(ctx, userID, false)
	if err != nil {
		return nil, fmt.Errorf("session stats: student rating: %w", err)
	}

	return &ports.SessionStats{
		Total:            total,
		ByStatus:         counts,
		AvgTeacherRating: roundOneDecimal(avgTeacher),
		AvgStudentRating: roundOneDecimal(avgStudent),
	}, nil
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
