package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/candidate-screener/internal/skills"
	"github.com/jonathan/candidate-screener/internal/types"
)

// Quick evaluation recommendations
const (
	RecommendationExcellent = "excellent"
	RecommendationStrong    = "strong"
	RecommendationModerate  = "moderate"
	RecommendationWeak      = "weak"
	RecommendationPoor      = "poor"
)

const maxNamedMissing = 3

// QuickSkillsEvaluation scores a candidate's skill list against a job without calling the oracle
func QuickSkillsEvaluation(candidate, required, preferred []string) (*types.QuickSkillsResult, error) {
	if len(skills.Union(candidate)) == 0 {
		return nil, &ValidationError{Field: "candidate_skills", Message: "at least one candidate skill is required"}
	}
	if len(skills.Union(required)) == 0 {
		return nil, &ValidationError{Field: "required_skills", Message: "at least one required skill is required"}
	}

	m := skills.MatchSkills(candidate, required, preferred)
	total := len(m.MatchedRequired) + len(m.MissingRequired)
	pct := int(math.Round(100 * float64(len(m.MatchedRequired)) / float64(total)))
	overall := min(pct+2*len(m.MatchedPreferred), 100)

	rec := recommendationFor(overall)
	return &types.QuickSkillsResult{
		MatchedRequired:         m.MatchedRequired,
		MissingRequired:         m.MissingRequired,
		MatchedPreferred:        m.MatchedPreferred,
		RequiredMatchPercentage: pct,
		OverallScore:            overall,
		Recommendation:          rec,
		Summary:                 quickSummary(rec, m.MissingRequired),
	}, nil
}

func recommendationFor(score int) string {
	switch {
	case score >= 90:
		return RecommendationExcellent
	case score >= 75:
		return RecommendationStrong
	case score >= 60:
		return RecommendationModerate
	case score >= 40:
		return RecommendationWeak
	default:
		return RecommendationPoor
	}
}

func quickSummary(rec string, missing []string) string {
	var head string
	switch rec {
	case RecommendationExcellent:
		head = "Excellent skill match"
	case RecommendationStrong:
		head = "Strong skill match"
	case RecommendationModerate:
		head = "Moderate skill match"
	case RecommendationWeak:
		head = "Weak skill match"
	default:
		head = "Poor skill match"
	}
	if len(missing) == 0 {
		return head + "."
	}
	named := missing
	if len(named) > maxNamedMissing {
		named = named[:maxNamedMissing]
	}
	return fmt.Sprintf("%s. Missing required: %s.", head, strings.Join(named, ", "))
}
