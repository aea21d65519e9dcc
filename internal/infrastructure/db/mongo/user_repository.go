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
)

const collectionUsers = "users"

// UserRepository implements ports.UserRepository using MongoDB.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := userToDoc(user)
	if err != nil {
		return nil, err
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var doc userDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) UpdateSkills(ctx context.Context, id string, offered, seeking []string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{
			"skills_offered": offered,
			"skills_seeking": seeking,
			"updated_at":     time.Now().UTC(),
		},
	})
	if err != nil {
		return fmt.Errorf("update skills: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdateFacultyAvailability(ctx context.Context, id string, status domain.FacultyStatus, weekly []domain.DayAvailability) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{
			"current_status":      status,
			"weekly_availability": weekly,
			"updated_at":          time.Now().UTC(),
		},
	})
	if err != nil {
		return fmt.Errorf("update availability: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// FindSeekingAny returns users whose skills_seeking intersects skillIDs,
// excluding excludeID.
func (r *UserRepository) FindSeekingAny(ctx context.Context, skillIDs []string, excludeID string) ([]*domain.User, error) {
	return r.findCandidates(ctx, bson.M{"skills_seeking": bson.M{"$in": skillIDs}}, excludeID)
}

// FindOfferingAny returns users whose skills_offered intersects skillIDs,
// excluding excludeID.
func (r *UserRepository) FindOfferingAny(ctx context.Context, skillIDs []string, excludeID string) ([]*domain.User, error) {
	return r.findCandidates(ctx, bson.M{"skills_offered": bson.M{"$in": skillIDs}}, excludeID)
}

// FindMutual returns users offering any of seekingIDs and seeking any of
// offeredIDs at the same time.
func (r *UserRepository) FindMutual(ctx context.Context, offeredIDs, seekingIDs []string, excludeID string) ([]*domain.User, error) {
	return r.findCandidates(ctx, bson.M{
		"skills_seeking": bson.M{"$in": offeredIDs},
		"skills_offered": bson.M{"$in": seekingIDs},
	}, excludeID)
}

func (r *UserRepository) findCandidates(ctx context.Context, filter bson.M, excludeID string) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if excludeID != "" {
		if oid, err := primitive.ObjectIDFromHex(excludeID); err == nil {
			filter["_id"] = bson.M{"$ne": oid}
		}
	}

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}
	defer cur.Close(ctx)

	var users []*domain.User
	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode candidate: %w", err)
		}
		users = append(users, doc.toDomain())
	}
	return users, cur.Err()
}

// EnsureIndexes creates the indexes the directory queries rely on: a unique
// email, and the two inverted skill→user mappings that keep candidate scans
// off a full collection walk.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "skills_offered", Value: 1}}},
		{Keys: bson.D{{Key: "skills_seeking", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// userDoc is the persisted shape of a user.
type userDoc struct {
	ID                 primitive.ObjectID       `bson:"_id,omitempty"`
	Name               string                   `bson:"name"`
	Email              string                   `bson:"email"`
	PasswordHash       string                   `bson:"password_hash"`
	Role               string                   `bson:"role"`
	SkillsOffered      []string                 `bson:"skills_offered"`
	SkillsSeeking      []string                 `bson:"skills_seeking"`
	IsAvailable        bool                     `bson:"is_available"`
	Mode               string                   `bson:"mode,omitempty"`
	Location           string                   `bson:"location,omitempty"`
	CurrentStatus      string                   `bson:"current_status,omitempty"`
	WeeklyAvailability []domain.DayAvailability `bson:"weekly_availability,omitempty"`
	CreatedAt          time.Time                `bson:"created_at"`
	UpdatedAt          time.Time                `bson:"updated_at"`
}

func userToDoc(u *domain.User) (*userDoc, error) {
	doc := &userDoc{
		Name:               u.Name,
		Email:              u.Email,
		PasswordHash:       u.PasswordHash,
		Role:               u.Role,
		SkillsOffered:      u.SkillsOffered,
		SkillsSeeking:      u.SkillsSeeking,
		IsAvailable:        u.IsAvailable,
		Mode:               string(u.Mode),
		Location:           u.Location,
		CurrentStatus:      string(u.CurrentStatus),
		WeeklyAvailability: u.WeeklyAvailability,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
	if u.ID != "" {
		oid, err := primitive.ObjectIDFromHex(u.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid user id: %w", err)
		}
		doc.ID = oid
	}
	return doc, nil
}

func (d *userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:                 d.ID.Hex(),
		Name:               d.Name,
		Email:              d.Email,
		PasswordHash:       d.PasswordHash,
		Role:               d.Role,
		SkillsOffered:      d.SkillsOffered,
		SkillsSeeking:      d.SkillsSeeking,
		IsAvailable:        d.IsAvailable,
		Mode:               domain.AvailabilityMode(d.Mode),
		Location:           d.Location,
		CurrentStatus:      domain.FacultyStatus(d.CurrentStatus),
		WeeklyAvailability: d.WeeklyAvailability,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}
