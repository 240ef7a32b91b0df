// Package prompts holds the embedded model instructions used by the evaluation stages.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"sync"
)

//go:embed *.json
var files embed.FS

// EvaluationFile holds the prompts for the resume-parse and specialist stages
const EvaluationFile = "evaluation.json"

// placeholderPattern matches {{.Key}} markers. Spaced forms such as {{ .Key }} are left alone.
var placeholderPattern = regexp.MustCompile(`\{\{\.([A-Za-z][A-Za-z0-9]*)\}\}`)

// Set is the parsed contents of one prompt file
type Set struct {
	name    string
	entries map[string]string
}

var sets sync.Map // filename -> *Set

// Open parses the named embedded prompt file, reusing an earlier parse when one exists
func Open(filename string) (*Set, error) {
	if cached, ok := sets.Load(filename); ok {
		return cached.(*Set), nil
	}

	raw, err := files.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading prompt file %s: %w", filename, err)
	}
	set := &Set{name: filename}
	if err := json.Unmarshal(raw, &set.entries); err != nil {
		return nil, fmt.Errorf("decoding prompt file %s: %w", filename, err)
	}

	actual, _ := sets.LoadOrStore(filename, set)
	return actual.(*Set), nil
}

// Lookup returns the template stored under key
func (s *Set) Lookup(key string) (string, error) {
	text, ok := s.entries[key]
	if !ok {
		return "", fmt.Errorf("prompt %q not found in %s", key, s.name)
	}
	return text, nil
}

// Keys lists the prompt keys in the set, sorted
func (s *Set) Keys() []string {
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Get opens filename and returns the template stored under key
func Get(filename, key string) (string, error) {
	set, err := Open(filename)
	if err != nil {
		return "", err
	}
	return set.Lookup(key)
}

// MustGet is Get for prompts that are known to exist; it panics otherwise.
func MustGet(filename, key string) string {
	text, err := Get(filename, key)
	if err != nil {
		panic("prompts: " + err.Error())
	}
	return text
}

// Render looks up a template and substitutes data into it
func Render(filename, key string, data map[string]string) (string, error) {
	text, err := Get(filename, key)
	if err != nil {
		return "", err
	}
	return Format(text, data), nil
}

// Format substitutes {{.Key}} markers with values from data. Markers without a value stay in place.
func Format(template string, data map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(marker string) string {
		name := placeholderPattern.FindStringSubmatch(marker)[1]
		if v, ok := data[name]; ok {
			return v
		}
		return marker
	})
}

// Placeholders returns the distinct marker names in template, sorted
func Placeholders(template string) []string {
	names := []string{}
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		if !slices.Contains(names, m[1]) {
			names = append(names, m[1])
		}
	}
	slices.Sort(names)
	return names
}
