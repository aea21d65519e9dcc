package handler

import (
	"time"

	"github.com/skillbridge/exchange-system/internal/core/domain"
	"github.com/skillbridge/exchange-system/internal/core/ports"
)

func toSessionResponse(s *domain.Session) sessionResponse {
	resp := sessionResponse{
		ID:              s.ID,
		TeacherID:       s.TeacherID,
		StudentID:       s.StudentID,
		SkillID:         s.SkillID,
		Title:           s.Title,
		Description:     s.Description,
		ScheduledDate:   s.ScheduledDate.Format(time.RFC3339),
		Duration:        s.Duration,
		SessionType:     string(s.SessionType),
		Location:        s.Location,
		MeetingLink:     s.MeetingLink,
		Status:          string(s.Status),
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		ActualDuration:  s.ActualDuration,
		TeacherNotes:    s.TeacherNotes,
		StudentNotes:    s.StudentNotes,
		TeacherRating:   s.TeacherRating,
		StudentRating:   s.StudentRating,
		TeacherFeedback: s.TeacherFeedback,
		StudentFeedback: s.StudentFeedback,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}

	if s.Cancellation != nil {
		resp.Cancellation = &cancellationResponse{
			CancelledBy: s.Cancellation.CancelledBy,
			Reason:      s.Cancellation.Reason,
			CancelledAt: s.Cancellation.CancelledAt,
		}
	}

	return resp
}

func toSessionResponses(sessions []*domain.Session) []sessionResponse {
	out := make([]sessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionResponse(s))
	}
	return out
}

func toPaginationResponse(p ports.Pagination) paginationResponse {
	return paginationResponse{
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
		HasNext:    p.HasNext,
		HasPrev:    p.HasPrev,
	}
}
