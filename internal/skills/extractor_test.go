package skills

import (
	"strings"
	"testing"

	"github.com/jonathan/candidate-screener/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findRecord(t *testing.T, records []types.SkillRecord, name string) types.SkillRecord {
	t.Helper()
	for _, r := range records {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("record %q not found", name)
	return types.SkillRecord{}
}

func TestExtract_ProficiencyAndYears(t *testing.T) {
	result := NewExtractor(nil).Extract("Expert in Python with 5 years experience")

	require.Contains(t, result.AllSkills, "Python")
	assert.Contains(t, result.TechnicalSkills, "Python")

	rec := findRecord(t, result.Records, "Python")
	assert.Equal(t, types.ProficiencyExpert, rec.Proficiency)
	require.NotNil(t, rec.YearsOfExperience)
	assert.Equal(t, 5.0, *rec.YearsOfExperience)
	assert.Contains(t, strings.ToLower(rec.MatchedContext), "python")
}

func TestExtract_PlusYearsAndSharedContext(t *testing.T) {
	result := NewExtractor(nil).Extract("5+ years of Python and Django experience, expert level")

	assert.Contains(t, result.TechnicalSkills, "Python")
	assert.Contains(t, result.Frameworks, "Django")
	for _, name := range []string{"Python", "Django"} {
		rec := findRecord(t, result.Records, name)
		assert.Equal(t, types.ProficiencyExpert, rec.Proficiency, name)
		require.NotNil(t, rec.YearsOfExperience, name)
		assert.Equal(t, 5.0, *rec.YearsOfExperience, name)
	}
}

func TestExtract_ContextKeepsOriginalCase(t *testing.T) {
	// İ lowercases to a longer byte sequence
	result := NewExtractor(nil).Extract("İstanbul office. Expert in Python")

	rec := findRecord(t, result.Records, "Python")
	assert.Equal(t, "İstanbul office. Expert in Python", rec.MatchedContext)
	assert.Equal(t, types.ProficiencyExpert, rec.Proficiency)
}

func TestExtract_ProficiencyOrder(t *testing.T) {
	tests := []struct {
		name string
		text string
		want types.Proficiency
	}{
		{"expert wins over beginner", "junior tasks but senior Java work", types.ProficiencyExpert},
		{"intermediate", "proficient with Java", types.ProficiencyIntermediate},
		{"beginner", "learning Java now", types.ProficiencyBeginner},
		{"none", "wrote Java", ""},
	}

	e := NewExtractor(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := findRecord(t, e.Extract(tt.text).Records, "Java")
			assert.Equal(t, tt.want, rec.Proficiency)
		})
	}
}

func TestExtract_WholeWordMatching(t *testing.T) {
	e := NewExtractor(nil)

	result := e.Extract("Wrote JavaScript, C++ and C# code on .NET")
	assert.Contains(t, result.AllSkills, "JavaScript")
	assert.Contains(t, result.AllSkills, "C++")
	assert.Contains(t, result.AllSkills, "C#")
	assert.Contains(t, result.AllSkills, ".NET")
	assert.NotContains(t, result.AllSkills, "Java", "Java must not match inside JavaScript")

	result = e.Extract("Built ASP.NET services")
	assert.Contains(t, result.AllSkills, "ASP.NET")
	assert.NotContains(t, result.AllSkills, ".NET")
}

func TestExtract_CategoriesAndAliases(t *testing.T) {
	text := "Golang services on k8s with Postgres, Redis, React, AWS and strong communication"
	result := NewExtractor(nil).Extract(text)

	assert.Contains(t, result.TechnicalSkills, "Go")
	assert.Contains(t, result.Tools, "Kubernetes")
	assert.Contains(t, result.Databases, "PostgreSQL")
	assert.Contains(t, result.Databases, "Redis")
	assert.Contains(t, result.Frameworks, "React")
	assert.Contains(t, result.CloudPlatforms, "AWS")
	assert.Contains(t, result.SoftSkills, "Communication")
}

func TestExtract_Deduplication(t *testing.T) {
	result := NewExtractor(nil).Extract("Python python PYTHON  golang Go go")

	seen := make(map[string]bool)
	for _, s := range result.AllSkills {
		key := NormalizeSkill(s)
		assert.False(t, seen[key], "duplicate skill %s", s)
		seen[key] = true
	}
	assert.Len(t, result.AllSkills, 2)
	assert.Len(t, result.Records, 2)
}

func TestExtract_EmptyAndGarbledInput(t *testing.T) {
	for _, text := range []string{"", "   ", "@@@ !!! ~~~", "\x00\x01\x02"} {
		result := NewExtractor(nil).Extract(text)
		assert.NotNil(t, result.AllSkills)
		assert.Empty(t, result.AllSkills)
		assert.NotNil(t, result.TechnicalSkills)
		assert.NotNil(t, result.Certifications)
		assert.NotNil(t, result.Records)
		assert.Equal(t, 40, result.Confidence)
	}
}

func TestConfidenceForCount(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 40}, {2, 40}, {3, 55}, {4, 55}, {5, 65}, {6, 65},
		{7, 75}, {9, 75}, {10, 85}, {14, 85}, {15, 95}, {40, 95},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ConfidenceForCount(tt.n), "count %d", tt.n)
	}
}

func TestExtract_Certifications(t *testing.T) {
	text := `Jane Doe
Summary
Backend engineer.

Licenses & Certifications
- AWS Certified Solutions Architect
• Certified Kubernetes Administrator
- aws certified solutions architect

Experience
Senior Engineer at Acme
Earned PMP while leading the migration`

	result := NewExtractor(nil).Extract(text)

	assert.Equal(t, []string{
		"AWS Certified Solutions Architect",
		"Certified Kubernetes Administrator",
		"Earned PMP while leading the migration",
	}, result.Certifications)
}

func TestExtract_CertificationHeaderWithInlineValue(t *testing.T) {
	text := "Certifications: CISSP\nEducation\nBSc Computer Science"
	result := NewExtractor(nil).Extract(text)
	assert.Equal(t, []string{"CISSP"}, result.Certifications)
}

func TestExtract_CertificationItemIsNotAHeader(t *testing.T) {
	text := "Jane Doe\nGoogle Cloud Certificate\nBuilt data pipelines in Python\nLed a team of five\nEducation\nBSc CS"
	result := NewExtractor(nil).Extract(text)
	assert.Equal(t, []string{"Google Cloud Certificate"}, result.Certifications)
}

func TestIsCertificationHeader(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"certifications", true},
		{"## licenses & certifications", true},
		{"professional certifications:", true},
		{"certificates: cka, ckad", true},
		{"google cloud certificate", false},
		{"certified kubernetes administrator", false},
		{"- certifications", false},
		{"professional", false},
		{"experience", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, isCertificationHeader(tt.line))
		})
	}
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "c++ c# node.js ci/cd front-end", normalizeText("c++,  c#;\n node.js (ci/cd) front-end!"))
}
