package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_EvaluationFile(t *testing.T) {
	set, err := Open(EvaluationFile)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"cultural-fit-system",
		"cultural-fit-task",
		"experience-system",
		"experience-task",
		"resume-parse-system",
		"resume-parse-task",
		"skills-system",
		"skills-task",
	}, set.Keys())

	again, err := Open(EvaluationFile)
	require.NoError(t, err)
	assert.Same(t, set, again)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open("nonexistent.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading prompt file")
}

func TestGet(t *testing.T) {
	text, err := Get(EvaluationFile, "skills-system")
	require.NoError(t, err)
	assert.Contains(t, text, "required skills 60%")

	_, err = Get(EvaluationFile, "nonexistent-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_PanicsOnUnknownFile(t *testing.T) {
	assert.Panics(t, func() { MustGet("nonexistent.json", "some-key") })
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		want     string
	}{
		{"fills every marker", "Role {{.Title}} at {{.Team}}", map[string]string{"Title": "SRE", "Team": "Infra"}, "Role SRE at Infra"},
		{"repeated marker", "{{.X}}-{{.X}}", map[string]string{"X": "a"}, "a-a"},
		{"missing value stays", "Hello {{.Name}}", map[string]string{}, "Hello {{.Name}}"},
		{"value is not rescanned", "{{.A}}", map[string]string{"A": "{{.B}}", "B": "no"}, "{{.B}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.template, tt.data))
		})
	}
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, Placeholders("{{.B}} and {{.A}} then {{.B}} but not {{ .C }}"))
	assert.Empty(t, Placeholders("no markers"))
}

func TestRender(t *testing.T) {
	out, err := Render(EvaluationFile, "experience-task", map[string]string{"RequiredExperience": "5"})
	require.NoError(t, err)
	assert.Contains(t, out, "Required experience: 5 years")
}

func TestSystemPrompts_HaveNoPlaceholders(t *testing.T) {
	for _, key := range []string{"resume-parse-system", "skills-system", "experience-system", "cultural-fit-system"} {
		assert.Empty(t, Placeholders(MustGet(EvaluationFile, key)), key)
	}
}
