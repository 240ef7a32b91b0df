package types

import "time"

// Decision is the hiring recommendation derived from the final score
type Decision string

// Decision bands, lowest to highest
const (
	DecisionStrongNo  Decision = "strong_no"
	DecisionNo        Decision = "no"
	DecisionMaybe     Decision = "maybe"
	DecisionYes       Decision = "yes"
	DecisionStrongYes Decision = "strong_yes"
)

// EvaluationStatus is the coarse accepted/rejected mapping of a decision
type EvaluationStatus string

// Evaluation statuses
const (
	StatusAccepted EvaluationStatus = "accepted"
	StatusRejected EvaluationStatus = "rejected"
)

// SkillsEvaluation is the skills specialist's judgment
type SkillsEvaluation struct {
	OverallScore           int      `json:"overall_score"`
	MatchedRequiredSkills  []string `json:"matched_required_skills"`
	MissingRequiredSkills  []string `json:"missing_required_skills"`
	MatchedPreferredSkills []string `json:"matched_preferred_skills"`
	TransferableSkills     []string `json:"transferable_skills"`
	Strengths              []string `json:"strengths"`
	Gaps                   []string `json:"gaps"`
	Reasoning              string   `json:"reasoning"`
	OverlapScore           int      `json:"overlap_score"`
	Reconciled             bool     `json:"reconciled"`
	Degraded               bool     `json:"degraded"`
}

// ExperienceEvaluation is the experience specialist's judgment
type ExperienceEvaluation struct {
	OverallScore            int      `json:"overall_score"`
	RelevantExperienceYears float64  `json:"relevant_experience_years"`
	CareerProgression       string   `json:"career_progression"`
	SeniorityMatch          bool     `json:"seniority_match"`
	LeadershipScore         int      `json:"leadership_score"`
	RelevantRoles           []string `json:"relevant_roles"`
	Achievements            []string `json:"achievements"`
	Concerns                []string `json:"concerns"`
	Reasoning               string   `json:"reasoning"`
	Degraded                bool     `json:"degraded"`
}

// CulturalFitEvaluation is the cultural-fit specialist's judgment
type CulturalFitEvaluation struct {
	OverallScore       int      `json:"overall_score"`
	CommunicationScore int      `json:"communication_score"`
	WorkStyle          string   `json:"work_style"`
	AdaptabilityScore  int      `json:"adaptability_score"`
	ValuesAlignment    []string `json:"values_alignment"`
	PositiveSignals    []string `json:"positive_signals"`
	Concerns           []string `json:"concerns"`
	Reasoning          string   `json:"reasoning"`
	Degraded           bool     `json:"degraded"`
}

// EvaluationResult is the terminal artifact of one pipeline run
type EvaluationResult struct {
	ParsedResume          ParsedResume          `json:"parsed_resume"`
	SkillsEvaluation      SkillsEvaluation      `json:"skills_evaluation"`
	ExperienceEvaluation  ExperienceEvaluation  `json:"experience_evaluation"`
	CulturalFitEvaluation CulturalFitEvaluation `json:"cultural_fit_evaluation"`
	FinalScore            int                   `json:"final_score"`
	Decision              Decision              `json:"decision"`
	Confidence            int                   `json:"confidence"`
	Status                EvaluationStatus      `json:"status"`
	ProcessingTimeMs      int64                 `json:"processing_time_ms"`
	Degraded              bool                  `json:"degraded"`
	ExtractionConfidence  int                   `json:"extraction_confidence"`
	EvaluatedAt           time.Time             `json:"evaluated_at"`
}

// QuickSkillsResult is the outcome of a deterministic skills-only check
type QuickSkillsResult struct {
	MatchedRequired         []string `json:"matched_required"`
	MissingRequired         []string `json:"missing_required"`
	MatchedPreferred        []string `json:"matched_preferred"`
	RequiredMatchPercentage int      `json:"required_match_percentage"`
	OverallScore            int      `json:"overall_score"`
	Recommendation          string   `json:"recommendation"`
	Summary                 string   `json:"summary"`
}
