package csvimport

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"question-bank/internal/domain"

	"github.com/agnivade/levenshtein"
)

// Thresholds are the minimum fuzzy similarity accepted per field.
type Thresholds struct {
	Section      float64
	Domain       float64
	QuestionType float64
	Difficulty   float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		Section:      0.45,
		Domain:       0.40,
		QuestionType: 0.30,
		Difficulty:   0.40,
	}
}

// Clean lowercases s, drops punctuation other than & - ( ) and collapses
// whitespace.
func Clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '&' || r == '-' || r == '(' || r == ')':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func singular(s string) string {
	if len(s) > 1 && strings.HasSuffix(s, "s") {
		return s[:len(s)-1]
	}
	return s
}

type phrase struct {
	text  string
	owner int
}

func phrases(candidates []domain.Candidate) []phrase {
	var out []phrase
	for i, c := range candidates {
		if p := Clean(c.Value); p != "" {
			out = append(out, phrase{text: p, owner: i})
		}
		for _, syn := range c.Synonyms {
			if p := Clean(syn); p != "" {
				out = append(out, phrase{text: p, owner: i})
			}
		}
	}
	return out
}

// Similarity is 1 - levenshtein(a, b) / max(len(a), len(b)) over runes.
func Similarity(a, b string) float64 {
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

// Match maps raw to the closest candidate value. The order is exact match,
// plural-stripped match, whole-word phrase containment (earliest phrase,
// then longest), then fuzzy similarity at or above threshold.
func Match(raw string, candidates []domain.Candidate, threshold float64) (string, bool) {
	if v, ok := matchKeyword(raw, candidates); ok {
		return v, true
	}
	return matchFuzzy(raw, candidates, threshold)
}

func matchKeyword(raw string, candidates []domain.Candidate) (string, bool) {
	clean := Clean(raw)
	if clean == "" || len(candidates) == 0 {
		return "", false
	}
	all := phrases(candidates)

	for _, p := range all {
		if p.text == clean {
			return candidates[p.owner].Value, true
		}
	}

	single := singular(clean)
	for _, p := range all {
		if singular(p.text) == single {
			return candidates[p.owner].Value, true
		}
	}

	// The phrase that starts earliest wins, then the longer one at the same
	// position, then table order.
	best, bestAt := -1, 0
	padded := " " + clean + " "
	for i, p := range all {
		at := strings.Index(padded, " "+p.text+" ")
		if at < 0 {
			continue
		}
		if best < 0 || at < bestAt || (at == bestAt && len(p.text) > len(all[best].text)) {
			best, bestAt = i, at
		}
	}
	if best < 0 {
		return "", false
	}
	return candidates[all[best].owner].Value, true
}

func matchFuzzy(raw string, candidates []domain.Candidate, threshold float64) (string, bool) {
	clean := Clean(raw)
	if clean == "" || len(candidates) == 0 {
		return "", false
	}
	best, bestScore := -1, -1.0
	for _, p := range phrases(candidates) {
		if score := Similarity(clean, p.text); score > bestScore {
			best, bestScore = p.owner, score
		}
	}
	if best >= 0 && bestScore >= threshold {
		return candidates[best].Value, true
	}
	return "", false
}

// Normalize is Match with a fallback. It always returns a member of a
// non-empty candidate list: fallback when it is a member, else the first
// candidate.
func Normalize(raw string, candidates []domain.Candidate, threshold float64, fallback string) string {
	if v, ok := Match(raw, candidates, threshold); ok {
		return v
	}
	for _, c := range candidates {
		if c.Value == fallback {
			return fallback
		}
	}
	if len(candidates) == 0 {
		return fallback
	}
	return candidates[0].Value
}

// Normalizer binds the taxonomy and per-field thresholds.
type Normalizer struct {
	taxonomy   *domain.Taxonomy
	thresholds Thresholds
}

func NewNormalizer(taxonomy *domain.Taxonomy, thresholds Thresholds) *Normalizer {
	return &Normalizer{taxonomy: taxonomy, thresholds: thresholds}
}

// Section maps raw to a section. Blank input stays blank.
func (n *Normalizer) Section(raw string) domain.Section {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	candidates := n.taxonomy.Sections()
	return domain.Section(Normalize(raw, candidates, n.thresholds.Section, ""))
}

// Domain maps raw to one of the section's domains. Blank input stays blank.
func (n *Normalizer) Domain(section domain.Section, raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	candidates := n.taxonomy.Domains(section)
	if len(candidates) == 0 {
		return strings.TrimSpace(raw)
	}
	return Normalize(raw, candidates, n.thresholds.Domain, "")
}

// QuestionType prefers the domain's types over the rest of the section, and
// any keyword hit over a fuzzy one. It falls back to the domain's first type.
// The bulk-commit placeholder is kept as is.
func (n *Normalizer) QuestionType(section domain.Section, domainName, raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	if Clean(raw) == Clean(domain.PlaceholderQuestionType) {
		return domain.PlaceholderQuestionType
	}
	scoped := n.taxonomy.QuestionTypes(section, domainName)
	sectionWide := n.taxonomy.SectionQuestionTypes(section)
	if v, ok := matchKeyword(raw, scoped); ok {
		return v
	}
	if v, ok := matchKeyword(raw, sectionWide); ok {
		return v
	}
	if v, ok := matchFuzzy(raw, scoped, n.thresholds.QuestionType); ok {
		return v
	}
	if v, ok := matchFuzzy(raw, sectionWide, n.thresholds.QuestionType); ok {
		return v
	}
	if len(scoped) > 0 {
		return scoped[0].Value
	}
	if len(sectionWide) > 0 {
		return sectionWide[0].Value
	}
	return strings.TrimSpace(raw)
}

// Difficulty maps raw to a difficulty, defaulting to Medium.
func (n *Normalizer) Difficulty(raw string) domain.Difficulty {
	if strings.TrimSpace(raw) == "" {
		return domain.DifficultyMedium
	}
	return domain.Difficulty(Normalize(raw, n.taxonomy.Difficulties(), n.thresholds.Difficulty, string(domain.DifficultyMedium)))
}
