// Package schemas holds the JSON Schemas that oracle responses are validated against.
package schemas

import "embed"

// Files contains every *.schema.json in this directory
//
//go:embed *.schema.json
var Files embed.FS

// Schema file names
const (
	ParsedResume          = "parsed_resume.schema.json"
	SkillsEvaluation      = "skills_evaluation.schema.json"
	ExperienceEvaluation  = "experience_evaluation.schema.json"
	CulturalFitEvaluation = "cultural_fit_evaluation.schema.json"
)
