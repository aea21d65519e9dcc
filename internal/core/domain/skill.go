package domain

// SkillCategory is the closed set of categories a skill can belong to.
type SkillCategory string

const (
	CategoryProgramming SkillCategory = "programming"
	CategoryDesign      SkillCategory = "design"
	CategoryLanguages   SkillCategory = "languages"
	CategoryMusic       SkillCategory = "music"
	CategoryAcademics   SkillCategory = "academics"
	CategoryBusiness    SkillCategory = "business"
	CategorySports      SkillCategory = "sports"
	CategoryOther       SkillCategory = "other"
)

// SkillCategories lists every valid category, in display order.
var SkillCategories = []SkillCategory{
	CategoryProgramming,
	CategoryDesign,
	CategoryLanguages,
	CategoryMusic,
	CategoryAcademics,
	CategoryBusiness,
	CategorySports,
	CategoryOther,
}

// SkillDifficulty grades how hard a skill is to pick up.
type SkillDifficulty string

const (
	DifficultyBeginner     SkillDifficulty = "beginner"
	DifficultyIntermediate SkillDifficulty = "intermediate"
	DifficultyAdvanced     SkillDifficulty = "advanced"
)

// Skill is a named, categorized teachable competency. Its identity is
// immutable and its name is globally unique, case-insensitive. Users and
// sessions reference skills by id only.
type Skill struct {
	ID          string          `json:"id" bson:"_id,omitempty"`
	Name        string          `json:"name" bson:"name"`
	Category    SkillCategory   `json:"category" bson:"category"`
	Description string          `json:"description,omitempty" bson:"description,omitempty"`
	Difficulty  SkillDifficulty `json:"difficulty" bson:"difficulty"`
}
