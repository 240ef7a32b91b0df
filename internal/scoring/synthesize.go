// Package scoring combines specialist judgments into a final score, decision and confidence.
package scoring

import (
	"math"

	"github.com/jonathan/candidate-screener/internal/types"
)

// Weights are the relative contributions of each specialist to the final score
type Weights struct {
	Skills      float64 `json:"skills" mapstructure:"skills"`
	Experience  float64 `json:"experience" mapstructure:"experience"`
	CulturalFit float64 `json:"cultural_fit" mapstructure:"cultural_fit"`
}

// DefaultWeights returns the standard 40/35/25 weighting
func DefaultWeights() Weights {
	return Weights{Skills: 0.40, Experience: 0.35, CulturalFit: 0.25}
}

// Normalized scales the weights to sum to 1, falling back to defaults when they cannot be used
func (w Weights) Normalized() Weights {
	if w.Skills < 0 || w.Experience < 0 || w.CulturalFit < 0 {
		return DefaultWeights()
	}
	sum := w.Skills + w.Experience + w.CulturalFit
	if sum <= 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return DefaultWeights()
	}
	return Weights{
		Skills:      w.Skills / sum,
		Experience:  w.Experience / sum,
		CulturalFit: w.CulturalFit / sum,
	}
}

const degradedConfidencePenalty = 25

// Options tune a synthesis run
type Options struct {
	Weights Weights
	// HasRequiredSkills enables the missing-critical-skill guardrail
	HasRequiredSkills    bool
	OverlapScore         int
	ExtractionConfidence int
}

// Synthesis is the deterministic outcome derived from the three partial judgments
type Synthesis struct {
	FinalScore int                    `json:"final_score"`
	Decision   types.Decision         `json:"decision"`
	Confidence int                    `json:"confidence"`
	Status     types.EvaluationStatus `json:"status"`
	Degraded   bool                   `json:"degraded"`
}

// Synthesize computes the weighted final score and everything derived from it. It never fails.
func Synthesize(skills types.SkillsEvaluation, experience types.ExperienceEvaluation, cultural types.CulturalFitEvaluation, opts Options) Synthesis {
	w := opts.Weights.Normalized()

	s := clamp(skills.OverallScore)
	e := clamp(experience.OverallScore)
	c := clamp(cultural.OverallScore)

	final := clamp(int(math.Round(w.Skills*float64(s) + w.Experience*float64(e) + w.CulturalFit*float64(c))))

	decision := DecisionForScore(final)
	if opts.HasRequiredSkills {
		decision = ApplyGuardrail(decision, opts.OverlapScore)
	}

	degradedCount := 0
	for _, d := range []bool{skills.Degraded, experience.Degraded, cultural.Degraded} {
		if d {
			degradedCount++
		}
	}

	return Synthesis{
		FinalScore: final,
		Decision:   decision,
		Confidence: Confidence([]int{s, e, c}, opts.ExtractionConfidence, degradedCount),
		Status:     StatusForDecision(decision),
		Degraded:   degradedCount > 0,
	}
}

// DecisionForScore maps a final score to its band
func DecisionForScore(score int) types.Decision {
	switch {
	case score >= 90:
		return types.DecisionStrongYes
	case score >= 80:
		return types.DecisionYes
	case score >= 60:
		return types.DecisionMaybe
	case score >= 40:
		return types.DecisionNo
	default:
		return types.DecisionStrongNo
	}
}

// DecisionRank orders decisions from strong_no (0) to strong_yes (4)
func DecisionRank(d types.Decision) int {
	switch d {
	case types.DecisionStrongYes:
		return 4
	case types.DecisionYes:
		return 3
	case types.DecisionMaybe:
		return 2
	case types.DecisionNo:
		return 1
	default:
		return 0
	}
}

var decisionsByRank = []types.Decision{
	types.DecisionStrongNo,
	types.DecisionNo,
	types.DecisionMaybe,
	types.DecisionYes,
	types.DecisionStrongYes,
}

// ApplyGuardrail caps a decision when required-skill overlap is low: below 50 at maybe, at 0 at no
func ApplyGuardrail(d types.Decision, overlap int) types.Decision {
	limit := types.DecisionStrongYes
	switch {
	case overlap <= 0:
		limit = types.DecisionNo
	case overlap < 50:
		limit = types.DecisionMaybe
	}
	return decisionsByRank[min(DecisionRank(d), DecisionRank(limit))]
}

// StatusForDecision maps a decision to the coarse accepted/rejected status
func StatusForDecision(d types.Decision) types.EvaluationStatus {
	switch d {
	case types.DecisionStrongYes, types.DecisionYes, types.DecisionMaybe:
		return types.StatusAccepted
	default:
		return types.StatusRejected
	}
}

// Confidence blends specialist agreement with extraction confidence and penalizes degraded specialists
func Confidence(scores []int, extractionConfidence int, degraded int) int {
	spread := 0
	if len(scores) > 0 {
		lo, hi := scores[0], scores[0]
		for _, s := range scores[1:] {
			lo = min(lo, s)
			hi = max(hi, s)
		}
		spread = hi - lo
	}
	raw := int(math.Round(0.7*float64(100-spread) + 0.3*float64(clamp(extractionConfidence))))
	return clamp(raw - degradedConfidencePenalty*degraded)
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
