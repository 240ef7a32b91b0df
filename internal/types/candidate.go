package types

// SeniorityLevel is the seniority a role is hiring for
type SeniorityLevel string

// Seniority levels
const (
	SeniorityEntry     SeniorityLevel = "entry"
	SeniorityMid       SeniorityLevel = "mid"
	SenioritySenior    SeniorityLevel = "senior"
	SeniorityLead      SeniorityLevel = "lead"
	SeniorityExecutive SeniorityLevel = "executive"
)

// CandidateParams is the input for evaluating one candidate against one job
type CandidateParams struct {
	CandidateName      string         `json:"candidate_name" validate:"required"`
	CandidateEmail     string         `json:"candidate_email" validate:"required,email"`
	CandidatePhone     string         `json:"candidate_phone,omitempty"`
	ResumeText         string         `json:"resume_text" validate:"required"`
	JobTitle           string         `json:"job_title" validate:"required"`
	JobDescription     string         `json:"job_description" validate:"required"`
	RequiredSkills     []string       `json:"required_skills" validate:"required,min=1,dive,required"`
	PreferredSkills    []string       `json:"preferred_skills,omitempty" validate:"omitempty,dive,required"`
	RequiredExperience float64        `json:"required_experience" validate:"gte=0"`
	SeniorityLevel     SeniorityLevel `json:"seniority_level" validate:"required,oneof=entry mid senior lead executive"`
	IndustryPreference string         `json:"industry_preference,omitempty"`
}

// Hints returns the contact details of the candidate as parse hints
func (p CandidateParams) Hints() ResumeHints {
	return ResumeHints{
		Name:  p.CandidateName,
		Email: p.CandidateEmail,
		Phone: p.CandidatePhone,
	}
}

// CandidateOverrides holds fields to replace on a stored record before re-evaluation.
// Nil fields keep the stored value.
type CandidateOverrides struct {
	CandidateName      *string         `json:"candidate_name,omitempty"`
	CandidateEmail     *string         `json:"candidate_email,omitempty"`
	CandidatePhone     *string         `json:"candidate_phone,omitempty"`
	ResumeText         *string         `json:"resume_text,omitempty"`
	JobTitle           *string         `json:"job_title,omitempty"`
	JobDescription     *string         `json:"job_description,omitempty"`
	RequiredSkills     []string        `json:"required_skills,omitempty"`
	PreferredSkills    []string        `json:"preferred_skills,omitempty"`
	RequiredExperience *float64        `json:"required_experience,omitempty"`
	SeniorityLevel     *SeniorityLevel `json:"seniority_level,omitempty"`
	IndustryPreference *string         `json:"industry_preference,omitempty"`
}

// Apply returns a copy of p with every set override applied
func (o CandidateOverrides) Apply(p CandidateParams) CandidateParams {
	merged := p
	if o.CandidateName != nil {
		merged.CandidateName = *o.CandidateName
	}
	if o.CandidateEmail != nil {
		merged.CandidateEmail = *o.CandidateEmail
	}
	if o.CandidatePhone != nil {
		merged.CandidatePhone = *o.CandidatePhone
	}
	if o.ResumeText != nil {
		merged.ResumeText = *o.ResumeText
	}
	if o.JobTitle != nil {
		merged.JobTitle = *o.JobTitle
	}
	if o.JobDescription != nil {
		merged.JobDescription = *o.JobDescription
	}
	if o.RequiredSkills != nil {
		merged.RequiredSkills = append([]string(nil), o.RequiredSkills...)
	}
	if o.PreferredSkills != nil {
		merged.PreferredSkills = append([]string(nil), o.PreferredSkills...)
	}
	if o.RequiredExperience != nil {
		merged.RequiredExperience = *o.RequiredExperience
	}
	if o.SeniorityLevel != nil {
		merged.SeniorityLevel = *o.SeniorityLevel
	}
	if o.IndustryPreference != nil {
		merged.IndustryPreference = *o.IndustryPreference
	}
	return merged
}
