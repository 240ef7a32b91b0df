// Package types provides type definitions for structured data used throughout the candidate-screener system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SkillCategory is one of the closed set of catalog categories
type SkillCategory string

// Skill categories declared by the catalog
const (
	CategoryLanguage  SkillCategory = "language"
	CategoryFramework SkillCategory = "framework"
	CategoryDatabase  SkillCategory = "database"
	CategoryCloud     SkillCategory = "cloud"
	CategoryTool      SkillCategory = "tool"
	CategorySoftSkill SkillCategory = "soft-skill"
)

// SkillCategories lists every valid category in catalog order
var SkillCategories = []SkillCategory{
	CategoryLanguage,
	CategoryFramework,
	CategoryDatabase,
	CategoryCloud,
	CategoryTool,
	CategorySoftSkill,
}

// Valid reports whether c is a declared category
func (c SkillCategory) Valid() bool {
	for _, known := range SkillCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Proficiency is the detected skill level
type Proficiency string

// Proficiency levels
const (
	ProficiencyExpert       Proficiency = "expert"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyBeginner     Proficiency = "beginner"
	ProficiencyUnknown      Proficiency = "unknown"
)

// SkillRecord is a single categorized skill found in a resume
type SkillRecord struct {
	Name              string        `json:"name"`
	Category          SkillCategory `json:"category"`
	Proficiency       Proficiency   `json:"proficiency,omitempty"`
	YearsOfExperience *float64      `json:"years_of_experience,omitempty"`
	MatchedContext    string        `json:"matched_context,omitempty"`
}

// SkillsExtractionResult is the output of the rule-based extractor
type SkillsExtractionResult struct {
	TechnicalSkills []string      `json:"technical_skills"`
	SoftSkills      []string      `json:"soft_skills"`
	Tools           []string      `json:"tools"`
	Frameworks      []string      `json:"frameworks"`
	Databases       []string      `json:"databases"`
	CloudPlatforms  []string      `json:"cloud_platforms"`
	Certifications  []string      `json:"certifications"`
	AllSkills       []string      `json:"all_skills"`
	Records         []SkillRecord `json:"records"`
	// Confidence is a step function of the skill count, not a probability.
	Confidence int `json:"confidence"`
}
