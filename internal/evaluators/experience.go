package evaluators

import (
	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/types"
	schemafiles "github.com/jonathan/candidate-screener/schemas"
)

// ExperienceSpecialist judges relevance, progression and seniority of past roles
func ExperienceSpecialist() Specialist[types.ExperienceEvaluation] {
	return Specialist[types.ExperienceEvaluation]{
		Role:      "experience",
		SystemKey: "experience-system",
		TaskKey:   "experience-task",
		Schema:    schemafiles.ExperienceEvaluation,
		Options:   llm.Options{Tier: llm.TierStandard},
		Data:      experienceData,
		Normalize: NormalizeExperience,
	}
}

func experienceData(in Input) map[string]string {
	data := jobData(in)
	total := 0.0
	if in.Resume != nil {
		total = in.Resume.TotalExperienceYears
	}
	data["TotalYears"] = formatYears(total)
	data["ExperienceSummary"] = experienceSummary(in.Resume)
	data["Education"] = educationSummary(in.Resume)
	return data
}

// NormalizeExperience coerces a raw oracle document into an ExperienceEvaluation
func NormalizeExperience(doc map[string]any) types.ExperienceEvaluation {
	return types.ExperienceEvaluation{
		OverallScore:            Score(doc["overall_score"]),
		RelevantExperienceYears: NonNegative(doc["relevant_experience_years"]),
		CareerProgression:       Text(doc["career_progression"]),
		SeniorityMatch:          coerceBool(doc["seniority_match"]),
		LeadershipScore:         Score(doc["leadership_score"]),
		RelevantRoles:           StringList(doc["relevant_roles"]),
		Achievements:            StringList(doc["achievements"]),
		Concerns:                StringList(doc["concerns"]),
		Reasoning:               Text(doc["reasoning"]),
	}
}

// DegradedExperience builds a neutral labeled result
func DegradedExperience(in Input) types.ExperienceEvaluation {
	years := 0.0
	if in.Resume != nil {
		years = in.Resume.TotalExperienceYears
	}
	return types.ExperienceEvaluation{
		RelevantExperienceYears: years,
		CareerProgression:       Placeholder,
		RelevantRoles:           []string{},
		Achievements:            []string{},
		Concerns:                []string{"Experience analysis unavailable"},
		Reasoning:               "Experience analysis unavailable; scored as 0",
		Degraded:                true,
	}
}
