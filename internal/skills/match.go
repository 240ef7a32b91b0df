package skills

import (
	"math"
	"strings"
)

// SkillMatch is the result of matching candidate skills against a job's skill lists
type SkillMatch struct {
	MatchedRequired  []string `json:"matched_required"`
	MissingRequired  []string `json:"missing_required"`
	MatchedPreferred []string `json:"matched_preferred"`
	MissingPreferred []string `json:"missing_preferred"`
	Score            int      `json:"score"`
}

// MatchSkills partitions required and preferred skills by whether the candidate has them.
// A skill matches when either normalized name contains the other.
func MatchSkills(candidate, required, preferred []string) SkillMatch {
	have := normalizeAll(candidate)

	m := SkillMatch{
		MatchedRequired:  []string{},
		MissingRequired:  []string{},
		MatchedPreferred: []string{},
		MissingPreferred: []string{},
	}

	requiredTotal := 0
	for _, skill := range required {
		if NormalizeSkill(skill) == "" {
			continue
		}
		requiredTotal++
		if hasSkill(have, skill) {
			m.MatchedRequired = append(m.MatchedRequired, skill)
		} else {
			m.MissingRequired = append(m.MissingRequired, skill)
		}
	}

	preferredTotal := 0
	for _, skill := range preferred {
		if NormalizeSkill(skill) == "" {
			continue
		}
		preferredTotal++
		if hasSkill(have, skill) {
			m.MatchedPreferred = append(m.MatchedPreferred, skill)
		} else {
			m.MissingPreferred = append(m.MissingPreferred, skill)
		}
	}

	requiredRatio := 1.0
	if requiredTotal > 0 {
		requiredRatio = float64(len(m.MatchedRequired)) / float64(requiredTotal)
	}
	preferredRatio := 1.0
	if preferredTotal > 0 {
		preferredRatio = float64(len(m.MatchedPreferred)) / float64(preferredTotal)
	}

	m.Score = clampScore(int(math.Round(70*requiredRatio + 30*preferredRatio)))
	return m
}

// CalculateOverlapScore returns the percentage of required skills the candidate covers.
// An empty required list scores 100.
func CalculateOverlapScore(candidate, required []string) int {
	have := normalizeAll(candidate)

	total, matched := 0, 0
	for _, skill := range required {
		if NormalizeSkill(skill) == "" {
			continue
		}
		total++
		if hasSkill(have, skill) {
			matched++
		}
	}
	if total == 0 {
		return 100
	}
	return clampScore(int(math.Round(100 * float64(matched) / float64(total))))
}

// normalizeAll normalizes candidate skills and drops blanks
func normalizeAll(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if n := NormalizeSkill(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func hasSkill(have []string, skill string) bool {
	want := NormalizeSkill(skill)
	if want == "" {
		return false
	}
	for _, h := range have {
		if strings.Contains(h, want) || strings.Contains(want, h) {
			return true
		}
	}
	return false
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Union merges skill lists, keeping the first spelling of each normalized name
func Union(lists ...[]string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, list := range lists {
		for _, s := range list {
			key := NormalizeSkill(s)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}
