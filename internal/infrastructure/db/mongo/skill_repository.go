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

const collectionSkills = "skills"

// SkillRepository implements ports.SkillRepository using MongoDB.
type SkillRepository struct {
	col *mongo.Collection
}

func NewSkillRepository(db *mongo.Database) *SkillRepository {
	return &SkillRepository{col: db.Collection(collectionSkills)}
}

func (r *SkillRepository) Create(ctx context.Context, skill *domain.Skill) (*domain.Skill, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := skillDoc{
		Name:        skill.Name,
		Category:    string(skill.Category),
		Description: skill.Description,
		Difficulty:  string(skill.Difficulty),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrSkillExists
		}
		return nil, fmt.Errorf("insert skill: %w", err)
	}

	created := *skill
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *SkillRepository) FindByID(ctx context.Context, id string) (*domain.Skill, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSkillNotFound
	}

	var doc skillDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSkillNotFound
		}
		return nil, fmt.Errorf("find skill: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByIDs resolves skill ids to records; unknown ids are dropped.
func (r *SkillRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Skill, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find skills: %w", err)
	}
	defer cur.Close(ctx)

	var skills []*domain.Skill
	for cur.Next(ctx) {
		var doc skillDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode skill: %w", err)
		}
		skills = append(skills, doc.toDomain())
	}
	return skills, cur.Err()
}

func (r *SkillRepository) List(ctx context.Context, category domain.SkillCategory) ([]*domain.Skill, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if category != "" {
		filter["category"] = string(category)
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	defer cur.Close(ctx)

	var skills []*domain.Skill
	for cur.Next(ctx) {
		var doc skillDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode skill: %w", err)
		}
		skills = append(skills, doc.toDomain())
	}
	return skills, cur.Err()
}

// EnsureIndexes creates the case-insensitive unique name index that enforces
// global skill-name uniqueness.
func (r *SkillRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	nameIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetCollation(&options.Collation{Locale: "en", Strength: 2}),
	}

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		nameIndex,
		{Keys: bson.D{{Key: "category", Value: 1}}},
	})
	return err
}

type skillDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Category    string             `bson:"category"`
	Description string             `bson:"description,omitempty"`
	Difficulty  string             `bson:"difficulty"`
}

func (d *skillDoc) toDomain() *domain.Skill {
	return &domain.Skill{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Category:    domain.SkillCategory(d.Category),
		Description: d.Description,
		Difficulty:  domain.SkillDifficulty(d.Difficulty),
	}
}
