package skills

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/candidate-screener/internal/types"
)

const contextRadius = 50

var (
	expertKeywords       = []string{"expert", "senior", "advanced"}
	intermediateKeywords = []string{"proficient", "experienced", "intermediate"}
	beginnerKeywords     = []string{"beginner", "basic", "junior", "learning"}

	yearsPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*[+-]?\s*years?\b`)

	// a certification header consists of these words only, e.g. "Licenses & Certifications"
	certificationHeaderWords = map[string]bool{
		"certification": true, "certifications": true, "certificate": true, "certificates": true,
		"license": true, "licenses": true, "licensure": true, "professional": true, "and": true, "&": true,
	}
	// a line outside a certification section naming one of these is itself an item
	certificationItemWords = []string{"certified", "certificate", "certification"}
	majorSectionHeaders      = []string{
		"experience", "education", "skills", "projects", "summary", "work history",
		"employment", "languages", "awards", "publications", "references", "interests", "volunteer",
	}
	bulletPrefix = regexp.MustCompile(`^(?:[-*•·–>]+\s*|\d+[.)]\s+)`)
)

// Extractor finds catalog skills in free text without calling any model
type Extractor struct {
	catalog *Catalog
}

// NewExtractor creates an extractor backed by catalog, falling back to the embedded catalog when nil
func NewExtractor(catalog *Catalog) *Extractor {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Extractor{catalog: catalog}
}

// Catalog returns the catalog the extractor matches against
func (e *Extractor) Catalog() *Catalog {
	return e.catalog
}

// Extract scans text for catalog skills and certifications. It never fails.
func (e *Extractor) Extract(text string) types.SkillsExtractionResult {
	result := types.SkillsExtractionResult{
		TechnicalSkills: []string{},
		SoftSkills:      []string{},
		Tools:           []string{},
		Frameworks:      []string{},
		Databases:       []string{},
		CloudPlatforms:  []string{},
		Certifications:  []string{},
		AllSkills:       []string{},
		Records:         []types.SkillRecord{},
	}

	normalized := normalizeText(text)
	lowered, origin := lowerWithOrigin(normalized)

	seen := make(map[string]bool)
	for _, entry := range e.catalog.entries {
		start, end, ok := findEntry(lowered, entry.Terms)
		if !ok {
			continue
		}
		key := NormalizeSkill(entry.Name)
		if seen[key] {
			continue
		}
		seen[key] = true

		window := contextWindow(normalized, origin[start], origin[end])
		record := types.SkillRecord{
			Name:           entry.Name,
			Category:       entry.Category,
			Proficiency:    detectProficiency(strings.ToLower(window)),
			MatchedContext: window,
		}
		if years, ok := detectYears(window); ok {
			record.YearsOfExperience = &years
		}

		result.Records = append(result.Records, record)
		result.AllSkills = append(result.AllSkills, entry.Name)
		switch entry.Category {
		case types.CategoryLanguage:
			result.TechnicalSkills = append(result.TechnicalSkills, entry.Name)
		case types.CategoryFramework:
			result.Frameworks = append(result.Frameworks, entry.Name)
		case types.CategoryDatabase:
			result.Databases = append(result.Databases, entry.Name)
		case types.CategoryCloud:
			result.CloudPlatforms = append(result.CloudPlatforms, entry.Name)
		case types.CategoryTool:
			result.Tools = append(result.Tools, entry.Name)
		case types.CategorySoftSkill:
			result.SoftSkills = append(result.SoftSkills, entry.Name)
		}
	}

	result.Certifications = extractCertifications(text, e.catalog.certifications)
	result.Confidence = ConfidenceForCount(len(result.AllSkills))
	return result
}

// ConfidenceForCount maps the number of distinct skills found to an extraction confidence
func ConfidenceForCount(n int) int {
	switch {
	case n >= 15:
		return 95
	case n >= 10:
		return 85
	case n >= 7:
		return 75
	case n >= 5:
		return 65
	case n >= 3:
		return 55
	default:
		return 40
	}
}

// normalizeText keeps letters, digits and the characters + # . / - and collapses whitespace
func normalizeText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '+', r == '#', r == '.', r == '/', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// lowerWithOrigin lowercases s rune by rune. origin maps every byte offset of the result,
// plus its length, to the offset in s of the rune it came from, so spans found in the
// lowercased text can be cut from s with its casing intact.
func lowerWithOrigin(s string) (string, []int) {
	var b strings.Builder
	b.Grow(len(s))
	origin := make([]int, 0, len(s)+1)
	for i, r := range s {
		n, _ := b.WriteRune(unicode.ToLower(r))
		for ; n > 0; n-- {
			origin = append(origin, i)
		}
	}
	origin = append(origin, len(s))
	return b.String(), origin
}

// isWordRune reports whether r continues a skill token
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#'
}

// findEntry returns the byte span of the first whole-word occurrence of any term
func findEntry(text string, terms []string) (int, int, bool) {
	bestStart, bestEnd := -1, -1
	for _, term := range terms {
		start, ok := findWholeWord(text, term)
		if ok && (bestStart == -1 || start < bestStart) {
			bestStart, bestEnd = start, start+len(term)
		}
	}
	return bestStart, bestEnd, bestStart != -1
}

// findWholeWord returns the first index of term in text bounded by non-word characters
func findWholeWord(text, term string) (int, bool) {
	if term == "" {
		return 0, false
	}
	offset := 0
	for offset <= len(text)-len(term) {
		idx := strings.Index(text[offset:], term)
		if idx < 0 {
			return 0, false
		}
		start := offset + idx
		end := start + len(term)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return start, true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
	return 0, false
}

func boundaryBefore(text string, start int) bool {
	if start == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:start])
	return !isWordRune(r)
}

func boundaryAfter(text string, end int) bool {
	if end >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[end:])
	return !isWordRune(r)
}

// contextWindow returns up to contextRadius bytes either side of the match, aligned to rune starts
func contextWindow(text string, start, end int) string {
	from := start - contextRadius
	if from < 0 {
		from = 0
	}
	for from > 0 && !utf8.RuneStart(text[from]) {
		from--
	}
	to := end + contextRadius
	if to > len(text) {
		to = len(text)
	}
	for to < len(text) && !utf8.RuneStart(text[to]) {
		to++
	}
	return strings.TrimSpace(text[from:to])
}

func detectProficiency(window string) types.Proficiency {
	switch {
	case containsAnyWord(window, expertKeywords):
		return types.ProficiencyExpert
	case containsAnyWord(window, intermediateKeywords):
		return types.ProficiencyIntermediate
	case containsAnyWord(window, beginnerKeywords):
		return types.ProficiencyBeginner
	default:
		return ""
	}
}

func containsAnyWord(text string, words []string) bool {
	for _, w := range words {
		if _, ok := findWholeWord(text, w); ok {
			return true
		}
	}
	return false
}

func detectYears(window string) (float64, bool) {
	m := yearsPattern.FindStringSubmatch(window)
	if m == nil {
		return 0, false
	}
	years, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return years, true
}

// extractCertifications collects lines under certification headers plus lines that name a certification
func extractCertifications(text string, keywords []string) []string {
	var certs []string
	seen := make(map[string]bool)
	add := func(line string) {
		cleaned := strings.TrimSpace(bulletPrefix.ReplaceAllString(strings.TrimSpace(line), ""))
		if cleaned == "" {
			return
		}
		key := NormalizeSkill(cleaned)
		if seen[key] {
			return
		}
		seen[key] = true
		certs = append(certs, cleaned)
	}

	inSection := false
	for _, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		switch {
		case isCertificationHeader(lower):
			inSection = true
			if _, rest, found := strings.Cut(line, ":"); found && strings.TrimSpace(rest) != "" {
				add(rest)
			}
			continue
		case isMajorSectionHeader(lower):
			inSection = false
			continue
		}

		if inSection || namesCertification(lower, keywords) {
			add(line)
		}
	}

	if certs == nil {
		return []string{}
	}
	return certs
}

// headerText strips markdown and punctuation decorations from a candidate header line
func headerText(lower string) string {
	h, _, _ := strings.Cut(lower, ":")
	h = strings.Trim(h, " #*=_-")
	return strings.Join(strings.Fields(h), " ")
}

func isCertificationHeader(lower string) bool {
	if bulletPrefix.MatchString(lower) {
		return false
	}
	words := strings.Fields(headerText(lower))
	if len(words) == 0 || len(words) > 4 {
		return false
	}
	hasCert := false
	for _, w := range words {
		if !certificationHeaderWords[w] {
			return false
		}
		hasCert = hasCert || strings.HasPrefix(w, "certif") || strings.HasPrefix(w, "licen")
	}
	return hasCert
}

func namesCertification(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if _, ok := findWholeWord(lower, kw); ok {
			return true
		}
	}
	return containsAnyWord(lower, certificationItemWords)
}

func isMajorSectionHeader(lower string) bool {
	if bulletPrefix.MatchString(lower) {
		return false
	}
	h := headerText(lower)
	if h == "" || len(strings.Fields(h)) > 3 {
		return false
	}
	for _, s := range majorSectionHeaders {
		if h == s || strings.HasPrefix(h, s+" ") || strings.HasSuffix(h, " "+s) {
			return true
		}
	}
	return false
}
