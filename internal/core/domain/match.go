package domain

// MatchType is the direction of a potential exchange between two users.
type MatchType string

const (
	MatchTeaching MatchType = "teaching" // I can teach them
	MatchLearning MatchType = "learning" // they can teach me
	MatchMutual   MatchType = "mutual"   // both directions at once
)

// SkillProfile is the scoring view of a user: just the two skill-id sets and
// the role. It is deliberately decoupled from User so the scorer stays pure.
type SkillProfile struct {
	Role    string
	Offered []string
	Seeking []string
}

// Profile extracts the scoring view from a full user record.
func (u *User) Profile() SkillProfile {
	return SkillProfile{Role: u.Role, Offered: u.SkillsOffered, Seeking: u.SkillsSeeking}
}
