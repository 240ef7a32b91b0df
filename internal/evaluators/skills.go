package evaluators

import (
	"math"
	"strings"

	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/skills"
	"github.com/jonathan/candidate-screener/internal/types"
	schemafiles "github.com/jonathan/candidate-screener/schemas"
)

// ReconcileThreshold is the largest oracle/overlap disagreement trusted as is
const ReconcileThreshold = 40

// SkillsSpecialist judges required, preferred and transferable skill coverage
func SkillsSpecialist() Specialist[types.SkillsEvaluation] {
	return Specialist[types.SkillsEvaluation]{
		Role:      "skills",
		SystemKey: "skills-system",
		TaskKey:   "skills-task",
		Schema:    schemafiles.SkillsEvaluation,
		Options:   llm.Options{Tier: llm.TierStandard},
		Data:      skillsData,
		Normalize: NormalizeSkills,
		Finalize:  finalizeSkills,
	}
}

func skillsData(in Input) map[string]string {
	data := jobData(in)
	data["CandidateSkills"] = joinOr(in.CandidateSkillNames(), "None detected")
	data["SkillDetails"] = skillDetails(in.Resume)
	var certs []string
	if in.Resume != nil {
		certs = in.Resume.Certifications
	}
	data["Certifications"] = joinOr(certs, notSpecified)
	return data
}

// NormalizeSkills coerces a raw oracle document into a SkillsEvaluation
func NormalizeSkills(doc map[string]any) types.SkillsEvaluation {
	return types.SkillsEvaluation{
		OverallScore:           Score(doc["overall_score"]),
		MatchedRequiredSkills:  StringList(doc["matched_required_skills"]),
		MissingRequiredSkills:  StringList(doc["missing_required_skills"]),
		MatchedPreferredSkills: StringList(doc["matched_preferred_skills"]),
		TransferableSkills:     StringList(doc["transferable_skills"]),
		Strengths:              StringList(doc["strengths"]),
		Gaps:                   StringList(doc["gaps"]),
		Reasoning:              Text(doc["reasoning"]),
	}
}

func finalizeSkills(ev types.SkillsEvaluation, in Input) types.SkillsEvaluation {
	ev.OverlapScore = in.OverlapScore()
	ev.OverallScore, ev.Reconciled = Reconcile(ev.OverallScore, ev.OverlapScore)
	return ev
}

// Reconcile averages the oracle score with the deterministic overlap when they disagree by more than ReconcileThreshold
func Reconcile(oracle, overlap int) (int, bool) {
	diff := oracle - overlap
	if diff < 0 {
		diff = -diff
	}
	if diff <= ReconcileThreshold {
		return oracle, false
	}
	return ClampScore(int(math.Round(float64(oracle+overlap) / 2))), true
}

// DegradedSkills builds a labeled result from deterministic matching alone
func DegradedSkills(in Input) types.SkillsEvaluation {
	match := matchCandidate(in)
	overlap := in.OverlapScore()
	return types.SkillsEvaluation{
		OverallScore:           overlap,
		MatchedRequiredSkills:  match.MatchedRequired,
		MissingRequiredSkills:  match.MissingRequired,
		MatchedPreferredSkills: match.MatchedPreferred,
		TransferableSkills:     []string{},
		Strengths:              []string{},
		Gaps:                   prefixed("Missing required skill: ", match.MissingRequired),
		Reasoning:              "Skills analysis unavailable; score reflects deterministic keyword overlap only",
		OverlapScore:           overlap,
		Degraded:               true,
	}
}

func prefixed(prefix string, items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, prefix+strings.TrimSpace(item))
	}
	return out
}

func matchCandidate(in Input) skills.SkillMatch {
	return skills.MatchSkills(in.CandidateSkillNames(), in.Params.RequiredSkills, in.Params.PreferredSkills)
}
