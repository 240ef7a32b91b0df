package evaluators

import (
	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/skills"
	"github.com/jonathan/candidate-screener/internal/types"
	schemafiles "github.com/jonathan/candidate-screener/schemas"
)

// CulturalFitSpecialist judges communication, work style and adaptability signals
func CulturalFitSpecialist() Specialist[types.CulturalFitEvaluation] {
	return Specialist[types.CulturalFitEvaluation]{
		Role:      "cultural_fit",
		SystemKey: "cultural-fit-system",
		TaskKey:   "cultural-fit-task",
		Schema:    schemafiles.CulturalFitEvaluation,
		Options:   llm.Options{Tier: llm.TierLite},
		Data:      culturalFitData,
		Normalize: NormalizeCulturalFit,
	}
}

func culturalFitData(in Input) map[string]string {
	data := jobData(in)
	summary := ""
	var soft []string
	if in.Resume != nil {
		summary = in.Resume.Summary
		for _, s := range in.Resume.Skills {
			if s.Category == types.CategorySoftSkill {
				soft = append(soft, s.Name)
			}
		}
	}
	if in.Extraction != nil {
		soft = skills.Union(soft, in.Extraction.SoftSkills)
	}
	data["ResumeSummary"] = orDefault(summary, notSpecified)
	data["SoftSkills"] = joinOr(soft, "None detected")
	data["ExperienceSummary"] = experienceSummary(in.Resume)
	return data
}

// NormalizeCulturalFit coerces a raw oracle document into a CulturalFitEvaluation
func NormalizeCulturalFit(doc map[string]any) types.CulturalFitEvaluation {
	return types.CulturalFitEvaluation{
		OverallScore:       Score(doc["overall_score"]),
		CommunicationScore: Score(doc["communication_score"]),
		WorkStyle:          Text(doc["work_style"]),
		AdaptabilityScore:  Score(doc["adaptability_score"]),
		ValuesAlignment:    StringList(doc["values_alignment"]),
		PositiveSignals:    StringList(doc["positive_signals"]),
		Concerns:           StringList(doc["concerns"]),
		Reasoning:          Text(doc["reasoning"]),
	}
}

// DegradedCulturalFit builds a neutral labeled result
func DegradedCulturalFit(Input) types.CulturalFitEvaluation {
	return types.CulturalFitEvaluation{
		WorkStyle:       Placeholder,
		ValuesAlignment: []string{},
		PositiveSignals: []string{},
		Concerns:        []string{"Cultural-fit analysis unavailable"},
		Reasoning:       "Cultural-fit analysis unavailable; scored as 0",
		Degraded:        true,
	}
}
