package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateOverlapScore(t *testing.T) {
	tests := []struct {
		name      string
		candidate []string
		required  []string
		want      int
	}{
		{"half covered", []string{"Python", "Django"}, []string{"python", "flask"}, 50},
		{"empty required", []string{"Go"}, nil, 100},
		{"nothing covered", []string{"Go"}, []string{"Rust", "Zig"}, 0},
		{"containment either direction", []string{"PostgreSQL 15"}, []string{"postgresql"}, 100},
		{"blank candidate entries never match", []string{"", "   "}, []string{"Go"}, 0},
		{"rounding", []string{"a1", "a2"}, []string{"a1", "a2", "zz"}, 67},
		{"typescript is not javascript", []string{"React", "Node.js", "TypeScript"}, []string{"React", "JavaScript", "TypeScript", "CSS"}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateOverlapScore(tt.candidate, tt.required))
		})
	}
}

func TestCalculateOverlapScore_CaseAndWhitespaceInvariant(t *testing.T) {
	required := []string{"Machine Learning", "Go", "Kubernetes"}
	base := CalculateOverlapScore([]string{"machine learning", "go"}, required)

	variants := [][]string{
		{"MACHINE   LEARNING", "GO"},
		{"  Machine\tLearning ", " go "},
		{"go", "machine learning"},
	}
	for _, v := range variants {
		assert.Equal(t, base, CalculateOverlapScore(v, required))
	}
	assert.Equal(t, 67, base)
}

func TestMatchSkills(t *testing.T) {
	m := MatchSkills(
		[]string{"Python", "Docker", "AWS Lambda"},
		[]string{"Python", "Go"},
		[]string{"docker", "Terraform"},
	)

	assert.Equal(t, []string{"Python"}, m.MatchedRequired)
	assert.Equal(t, []string{"Go"}, m.MissingRequired)
	assert.Equal(t, []string{"docker"}, m.MatchedPreferred)
	assert.Equal(t, []string{"Terraform"}, m.MissingPreferred)
	// 70*0.5 + 30*0.5
	assert.Equal(t, 50, m.Score)
}

func TestMatchSkills_FrontendStack(t *testing.T) {
	m := MatchSkills(
		[]string{"React", "Node.js", "TypeScript"},
		[]string{"React", "JavaScript", "TypeScript", "CSS"},
		nil,
	)
	assert.Equal(t, []string{"React", "TypeScript"}, m.MatchedRequired)
	assert.Equal(t, []string{"JavaScript", "CSS"}, m.MissingRequired)
}

func TestMatchSkills_NoPreferredCountsAsFull(t *testing.T) {
	m := MatchSkills([]string{"Go"}, []string{"Go"}, nil)
	assert.Equal(t, 100, m.Score)
	assert.Empty(t, m.MissingPreferred)
	assert.NotNil(t, m.MatchedPreferred)
}

func TestMatchSkills_EmptyRequiredCountsAsFull(t *testing.T) {
	m := MatchSkills([]string{"Go"}, nil, []string{"Rust"})
	assert.Equal(t, 70, m.Score)
}

func TestUnion(t *testing.T) {
	got := Union([]string{"Go", " python "}, []string{"GO", "Rust", ""}, nil)
	assert.Equal(t, []string{"Go", "python", "Rust"}, got)
}
