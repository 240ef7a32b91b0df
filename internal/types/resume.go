package types

// ParsedResume is the structured form of a resume produced by the resume-parse specialist
type ParsedResume struct {
	Name                 string           `json:"name"`
	Email                string           `json:"email"`
	Phone                string           `json:"phone,omitempty"`
	Summary              string           `json:"summary"`
	Skills               []SkillRecord    `json:"skills"`
	Experience           []WorkExperience `json:"experience"`
	Education            []Education      `json:"education"`
	Certifications       []string         `json:"certifications"`
	TotalExperienceYears float64          `json:"total_experience_years"`
	Languages            []string         `json:"languages"`
}

// WorkExperience is one position held by the candidate
type WorkExperience struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
	Description string   `json:"description"`
	Highlights  []string `json:"highlights"`
}

// Education is one degree or program
type Education struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	Field          string `json:"field,omitempty"`
	GraduationYear string `json:"graduation_year,omitempty"`
}

// SkillNames returns the names of all parsed skills
func (r *ParsedResume) SkillNames() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.Skills))
	for _, s := range r.Skills {
		names = append(names, s.Name)
	}
	return names
}

// ResumeHints carries contact details already known to the caller
type ResumeHints struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}
