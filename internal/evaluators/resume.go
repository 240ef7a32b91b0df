package evaluators

import (
	"strings"

	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/skills"
	"github.com/jonathan/candidate-screener/internal/types"
	schemafiles "github.com/jonathan/candidate-screener/schemas"
)

const notProvided = "Not provided"

// ResumeParser structures raw resume text. Parsed skills are kept only when their category
// is a catalog category, or when catalog knows the skill by name.
func ResumeParser(catalog *skills.Catalog) Specialist[types.ParsedResume] {
	if catalog == nil {
		catalog = skills.DefaultCatalog()
	}
	return Specialist[types.ParsedResume]{
		Role:      "resume_parse",
		SystemKey: "resume-parse-system",
		TaskKey:   "resume-parse-task",
		Schema:    schemafiles.ParsedResume,
		Options:   llm.Options{Tier: llm.TierStandard, MaxTokens: 4096},
		Data:      resumeData,
		Normalize: func(doc map[string]any) types.ParsedResume {
			return NormalizeResume(doc, catalog)
		},
		Finalize: finalizeResume,
	}
}

func resumeData(in Input) map[string]string {
	hints := in.Params.Hints()
	var detected []string
	if in.Extraction != nil {
		detected = in.Extraction.AllSkills
	}
	return map[string]string{
		"ResumeText": excerpt(in.Params.ResumeText, resumeTextLimit),
		"NameHint":   orDefault(hints.Name, notProvided),
		"EmailHint":  orDefault(hints.Email, notProvided),
		"PhoneHint":  orDefault(hints.Phone, notProvided),
		"SkillHints": joinOr(detected, "None detected"),
	}
}

// NormalizeResume coerces a raw oracle document into a ParsedResume
func NormalizeResume(doc map[string]any, catalog *skills.Catalog) types.ParsedResume {
	r := types.ParsedResume{
		Name:                 coerceString(doc["name"]),
		Email:                coerceString(doc["email"]),
		Phone:                coerceString(doc["phone"]),
		Summary:              coerceString(doc["summary"]),
		Skills:               normalizeSkillRecords(doc["skills"], catalog),
		Experience:           []types.WorkExperience{},
		Education:            []types.Education{},
		Certifications:       StringList(doc["certifications"]),
		TotalExperienceYears: NonNegative(doc["total_experience_years"]),
		Languages:            StringList(doc["languages"]),
	}

	for _, item := range objects(doc["experience"]) {
		r.Experience = append(r.Experience, types.WorkExperience{
			Title:       coerceString(item["title"]),
			Company:     coerceString(item["company"]),
			StartDate:   coerceString(item["start_date"]),
			EndDate:     coerceString(item["end_date"]),
			Description: coerceString(item["description"]),
			Highlights:  StringList(item["highlights"]),
		})
	}
	for _, item := range objects(doc["education"]) {
		r.Education = append(r.Education, types.Education{
			Degree:         coerceString(item["degree"]),
			Institution:    coerceString(item["institution"]),
			Field:          coerceString(item["field"]),
			GraduationYear: coerceString(item["graduation_year"]),
		})
	}
	return r
}

func finalizeResume(r types.ParsedResume, in Input) types.ParsedResume {
	hints := in.Params.Hints()
	if r.Name == "" {
		r.Name = strings.TrimSpace(hints.Name)
	}
	if r.Email == "" {
		r.Email = strings.TrimSpace(hints.Email)
	}
	if r.Phone == "" {
		r.Phone = strings.TrimSpace(hints.Phone)
	}
	if in.Extraction != nil {
		if len(r.Skills) == 0 {
			r.Skills = append([]types.SkillRecord{}, in.Extraction.Records...)
		}
		if len(r.Certifications) == 0 {
			r.Certifications = append([]string{}, in.Extraction.Certifications...)
		}
	}
	return r
}

func objects(v any) []map[string]any {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func normalizeSkillRecords(v any, catalog *skills.Catalog) []types.SkillRecord {
	records := []types.SkillRecord{}
	items, ok := v.([]any)
	if !ok {
		return records
	}

	seen := make(map[string]bool)
	for _, item := range items {
		var record types.SkillRecord
		switch val := item.(type) {
		case string:
			record.Name = strings.TrimSpace(val)
		case map[string]any:
			record.Name = coerceString(val["name"])
			record.Category = types.SkillCategory(strings.ToLower(coerceString(val["category"])))
			record.Proficiency = normalizeProficiency(coerceString(val["proficiency"]))
			if years := coerceFloat(val["years_of_experience"]); years > 0 {
				record.YearsOfExperience = &years
			}
		default:
			continue
		}

		key := skills.NormalizeSkill(record.Name)
		if key == "" || seen[key] {
			continue
		}
		if !record.Category.Valid() {
			entry, ok := catalog.Lookup(record.Name)
			if !ok {
				continue
			}
			record.Category = entry.Category
		}
		seen[key] = true
		records = append(records, record)
	}
	return records
}

func normalizeProficiency(s string) types.Proficiency {
	switch p := types.Proficiency(strings.ToLower(strings.TrimSpace(s))); p {
	case types.ProficiencyExpert, types.ProficiencyAdvanced, types.ProficiencyIntermediate, types.ProficiencyBeginner:
		return p
	case "":
		return ""
	default:
		return types.ProficiencyUnknown
	}
}
