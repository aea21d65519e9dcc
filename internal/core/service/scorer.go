package service

import (
	"math"

	"github.com/skillbridge/exchange-system/internal/core/domain"
)

// Scoring weights. Teaching and learning overlaps count one direction each;
// a mutual match weighs both directions at the higher rate.
const (
	teachingWeight = 20
	learningWeight = 20
	mutualWeight   = 25
	sameRoleBonus  = 10
	diversityCap   = 15
)

// CompatibilityScore computes the affinity between two skill profiles for a
// given exchange direction. Pure and deterministic: no I/O, no clock. The
// result is rounded to the nearest integer and has no upper bound.
func CompatibilityScore(mine, theirs domain.SkillProfile, direction domain.MatchType) int {
	teach := len(intersectIDs(mine.Offered, theirs.Seeking))
	learn := len(intersectIDs(mine.Seeking, theirs.Offered))

	var score float64
	switch direction {
	case domain.MatchTeaching:
		score = float64(teachingWeight * teach)
	case domain.MatchLearning:
		score = float64(learningWeight * learn)
	case domain.MatchMutual:
		score = float64(mutualWeight * (teach + learn))
	}

	if sameRole(mine.Role, theirs.Role) {
		score += sameRoleBonus
	}
	score += diversityBonus(mine, theirs)

	return int(math.Round(score))
}

// sameRole rewards student-student and faculty-faculty pairings only.
func sameRole(a, b string) bool {
	if a != b {
		return false
	}
	return a == domain.RoleStudent || a == domain.RoleFaculty
}

// diversityBonus grows with the number of distinct skills across both users'
// offered and seeking sets, capped at diversityCap.
func diversityBonus(a, b domain.SkillProfile) float64 {
	distinct := make(map[string]struct{})
	for _, set := range [][]string{a.Offered, a.Seeking, b.Offered, b.Seeking} {
		for _, id := range set {
			distinct[id] = struct{}{}
		}
	}

	bonus := float64(len(distinct)) / 4 * 2
	if bonus > diversityCap {
		return diversityCap
	}
	return bonus
}

// intersectIDs returns the elements of a that also appear in b, preserving
// the order of a.
func intersectIDs(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	inB := make(map[string]struct{}, len(b))
	for _, id := range b {
		inB[id] = struct{}{}
	}
	var out []string
	for _, id := range a {
		if _, ok := inB[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
