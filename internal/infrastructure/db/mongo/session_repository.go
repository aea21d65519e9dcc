package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skillbridge/exchange-system/internal/core/domain"
	"github.com/skillbridge/exchange-system/internal/core/ports"
)

const collectionSessions = "sessions"

// SessionRepository implements ports.SessionRepository using MongoDB.
type SessionRepository struct {
	col *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{col: db.Collection(collectionSessions)}
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := sessionToDoc(s)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = oid.Hex()
	}
	return nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id string) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}

	var doc sessionDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return doc.toDomain(), nil
}

// FindConflicting returns active sessions involving userID on either side
// whose scheduled date lies within [from, to].
func (r *SessionRepository) FindConflicting(ctx context.Context, userID string, from, to time.Time) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	statuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statuses[i] = string(s)
	}

	filter := bson.M{
		"status": bson.M{"$in": statuses},
		"$or": []bson.M{
			{"teacher_id": userID},
			{"student_id": userID},
		},
		"scheduled_date": bson.M{"$gte": from, "$lte": to},
	}

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find conflicting: %w", err)
	}
	defer cur.Close(ctx)

	return decodeSessions(ctx, cur)
}

func (r *SessionRepository) List(ctx context.Context, filter ports.ListSessionsFilter) ([]*domain.Session, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	switch filter.Role {
	case "teacher":
		query["teacher_id"] = filter.UserID
	case "student":
		query["student_id"] = filter.UserID
	default:
		query["$or"] = []bson.M{
			{"teacher_id": filter.UserID},
			{"student_id": filter.UserID},
		}
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count sessions: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "scheduled_date", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list sessions: %w", err)
	}
	defer cur.Close(ctx)

	sessions, err := decodeSessions(ctx, cur)
	if err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

func (r *SessionRepository) Update(ctx context.Context, s *domain.Session) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(s.ID)
	if err != nil {
		return domain.ErrSessionNotFound
	}

	doc := sessionToDoc(s)
	doc.ID = oid
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrSessionNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// CountByStatus groups the user's sessions (either side) by status.
func (r *SessionRepository) CountByStatus(ctx context.Context, userID string) (map[domain.SessionStatus]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"$or": []bson.M{
				{"teacher_id": userID},
				{"student_id": userID},
			},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer cur.Close(ctx)

	counts := make(map[domain.SessionStatus]int64)
	for cur.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode status count: %w", err)
		}
		counts[domain.SessionStatus(row.Status)] = row.Count
	}
	return counts, cur.Err()
}

// AverageRating computes the mean recorded rating on the user's completed
// sessions for one side. Unrated sessions are excluded.
func (r *SessionRepository) AverageRating(ctx context.Context, userID string, asTeacher bool) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sideField, ratingField := "student_id", "student_rating"
	if asTeacher {
		sideField, ratingField = "teacher_id", "teacher_rating"
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			sideField:   userID,
			"status":    string(domain.StatusCompleted),
			ratingField: bson.M{"$gt": 0},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id": nil,
			"avg": bson.M{"$avg": "$" + ratingField},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("average rating: %w", err)
	}
	defer cur.Close(ctx)

	if cur.Next(ctx) {
		var row struct {
			Avg float64 `bson:"avg"`
		}
		if err := cur.Decode(&row); err != nil {
			return 0, fmt.Errorf("decode average rating: %w", err)
		}
		return row.Avg, nil
	}
	return 0, cur.Err()
}

// EnsureIndexes creates the indexes the conflict window and list queries use.
func (r *SessionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "teacher_id", Value: 1}, {Key: "scheduled_date", Value: 1}}},
		{Keys: bson.D{{Key: "student_id", Value: 1}, {Key: "scheduled_date", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodeSessions(ctx context.Context, cur *mongo.Cursor) ([]*domain.Session, error) {
	var sessions []*domain.Session
	for cur.Next(ctx) {
		var doc sessionDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode session: %w", err)
		}
		sessions = append(sessions, doc.toDomain())
	}
	return sessions, cur.Err()
}

// sessionDoc is the persisted shape of a session.
type sessionDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	TeacherID     string             `bson:"teacher_id"`
	StudentID     string             `bson:"student_id"`
	SkillID       string             `bson:"skill_id"`
	Title         string             `bson:"title"`
	Description   string             `bson:"description"`
	ScheduledDate time.Time          `bson:"scheduled_date"`
	Duration      int                `bson:"duration"`
	SessionType   string             `bson:"session_type"`
	Location      string             `bson:"location,omitempty"`
	MeetingLink   string             `bson:"meeting_link,omitempty"`
	Status        string             `bson:"status"`

	StartTime      *time.Time `bson:"start_time,omitempty"`
	EndTime        *time.Time `bson:"end_time,omitempty"`
	ActualDuration int        `bson:"actual_duration,omitempty"`

	TeacherNotes    string `bson:"teacher_notes,omitempty"`
	StudentNotes    string `bson:"student_notes,omitempty"`
	TeacherRating   int    `bson:"teacher_rating,omitempty"`
	StudentRating   int    `bson:"student_rating,omitempty"`
	TeacherFeedback string `bson:"teacher_feedback,omitempty"`
	StudentFeedback string `bson:"student_feedback,omitempty"`

	Cancellation *domain.Cancellation `bson:"cancellation,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func sessionToDoc(s *domain.Session) *sessionDoc {
	return &sessionDoc{
		TeacherID:       s.TeacherID,
		StudentID:       s.StudentID,
		SkillID:         s.SkillID,
		Title:           s.Title,
		Description:     s.Description,
		ScheduledDate:   s.ScheduledDate,
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
		Cancellation:    s.Cancellation,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func (d *sessionDoc) toDomain() *domain.Session {
	return &domain.Session{
		ID:              d.ID.Hex(),
		TeacherID:       d.TeacherID,
		StudentID:       d.StudentID,
		SkillID:         d.SkillID,
		Title:           d.Title,
		Description:     d.Description,
		ScheduledDate:   d.ScheduledDate,
		Duration:        d.Duration,
		SessionType:     domain.SessionType(d.SessionType),
		Location:        d.Location,
		MeetingLink:     d.MeetingLink,
		Status:          domain.SessionStatus(d.Status),
		StartTime:       d.StartTime,
		EndTime:         d.EndTime,
		ActualDuration:  d.ActualDuration,
		TeacherNotes:    d.TeacherNotes,
		StudentNotes:    d.StudentNotes,
		TeacherRating:   d.TeacherRating,
		StudentRating:   d.StudentRating,
		TeacherFeedback: d.TeacherFeedback,
		StudentFeedback: d.StudentFeedback,
		Cancellation:    d.Cancellation,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}
