// Package skills provides the skill catalog, the rule-based skill extractor and skill matching utilities.
package skills

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/jonathan/candidate-screener/internal/types"
)

//go:embed catalog.json
var defaultCatalogJSON []byte

// CatalogDefinition is the on-disk shape of a skill catalog
type CatalogDefinition struct {
	Categories     map[string][]string `json:"categories"`
	Aliases        map[string]string   `json:"aliases,omitempty"`
	Certifications []string            `json:"certifications,omitempty"`
}

// Entry is one canonical skill with the lowercased terms that match it
type Entry struct {
	Name     string
	Category types.SkillCategory
	Terms    []string
}

// Catalog is an immutable set of known skills grouped by category
type Catalog struct {
	entries        []Entry
	certifications []string
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// DefaultCatalog returns the embedded catalog
func DefaultCatalog() *Catalog {
	defaultOnce.Do(func() {
		c, err := ParseCatalog(defaultCatalogJSON)
		if err != nil {
			panic(fmt.Sprintf("embedded skill catalog is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// LoadCatalog reads a catalog definition from a JSON file
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &CatalogError{Message: fmt.Sprintf("failed to read catalog file %s", path), Cause: err}
	}
	return ParseCatalog(data)
}

// ParseCatalog builds a catalog from JSON bytes
func ParseCatalog(data []byte) (*Catalog, error) {
	var def CatalogDefinition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, &CatalogError{Message: "failed to parse catalog JSON", Cause: err}
	}
	return NewCatalog(def)
}

// NewCatalog validates a definition and builds the catalog.
// Unknown categories, blank names, duplicate names and dangling aliases are rejected.
func NewCatalog(def CatalogDefinition) (*Catalog, error) {
	for name := range def.Categories {
		if !types.SkillCategory(name).Valid() {
			return nil, &CatalogError{Message: fmt.Sprintf("unknown skill category %q", name)}
		}
	}

	c := &Catalog{}
	byKey := make(map[string]int)

	// Iterate in declared category order so extraction output is deterministic
	for _, category := range types.SkillCategories {
		for _, raw := range def.Categories[string(category)] {
			name := strings.TrimSpace(raw)
			if name == "" {
				return nil, &CatalogError{Message: fmt.Sprintf("blank skill name in category %q", category)}
			}
			key := NormalizeSkill(name)
			if _, exists := byKey[key]; exists {
				return nil, &CatalogError{Message: fmt.Sprintf("duplicate skill %q", name)}
			}
			byKey[key] = len(c.entries)
			c.entries = append(c.entries, Entry{Name: name, Category: category, Terms: []string{key}})
		}
	}

	aliases := make([]string, 0, len(def.Aliases))
	for alias := range def.Aliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	for _, alias := range aliases {
		target := NormalizeSkill(def.Aliases[alias])
		idx, ok := byKey[target]
		if !ok {
			return nil, &CatalogError{Message: fmt.Sprintf("alias %q points to unknown skill %q", alias, def.Aliases[alias])}
		}
		term := NormalizeSkill(alias)
		if term == "" {
			continue
		}
		c.entries[idx].Terms = append(c.entries[idx].Terms, term)
	}

	seen := make(map[string]bool)
	for _, cert := range def.Certifications {
		key := NormalizeSkill(cert)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		c.certifications = append(c.certifications, key)
	}

	return c, nil
}

// Entries returns a copy of the catalog entries
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of canonical skills
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Lookup returns the entry whose name or alias equals name after normalization
func (c *Catalog) Lookup(name string) (Entry, bool) {
	key := NormalizeSkill(name)
	if key == "" {
		return Entry{}, false
	}
	for _, e := range c.entries {
		for _, term := range e.Terms {
			if term == key {
				return e, true
			}
		}
	}
	return Entry{}, false
}

// HasCategory reports whether category is one of the declared catalog categories
func (c *Catalog) HasCategory(category string) bool {
	return types.SkillCategory(category).Valid()
}

// CertificationKeywords returns the lowercased certification keywords
func (c *Catalog) CertificationKeywords() []string {
	out := make([]string, len(c.certifications))
	copy(out, c.certifications)
	return out
}

// NormalizeSkill lowercases a skill name and collapses internal whitespace
func NormalizeSkill(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
