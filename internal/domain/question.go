package domain

import "strings"

// Section is one of the two fixed top-level categories.
type Section string

const (
	SectionReadingWriting Section = "Reading and Writing"
	SectionMath           Section = "Math"
)

// IsMathLike reports whether the section relaxes the question-text rule and
// auto-fills empty answer choices.
func (s Section) IsMathLike() bool {
	return s == SectionMath
}

// Valid reports whether s is one of the known sections.
func (s Section) Valid() bool {
	return s == SectionReadingWriting || s == SectionMath
}

// Difficulty of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// ChoiceKey identifies one of the four answer choices.
type ChoiceKey string

const (
	ChoiceA ChoiceKey = "A"
	ChoiceB ChoiceKey = "B"
	ChoiceC ChoiceKey = "C"
	ChoiceD ChoiceKey = "D"
)

// ChoiceKeys lists the keys in display order.
var ChoiceKeys = []ChoiceKey{ChoiceA, ChoiceB, ChoiceC, ChoiceD}

// PlaceholderQuestionType is assigned by bulk-commit to section A records that
// still lack a question type.
const PlaceholderQuestionType = "Unspecified"

// Field names used for validation flags.
const (
	FieldSection       = "section"
	FieldDomain        = "domain"
	FieldQuestionType  = "questionType"
	FieldPassage       = "passage"
	FieldQuestionText  = "questionText"
	FieldChoiceA       = "choiceA"
	FieldChoiceB       = "choiceB"
	FieldChoiceC       = "choiceC"
	FieldChoiceD       = "choiceD"
	FieldCorrectAnswer = "correctAnswer"
)

// AnswerChoices maps the four fixed keys to their text.
type AnswerChoices struct {
	A string `json:"A"`
	B string `json:"B"`
	C string `json:"C"`
	D string `json:"D"`
}

// Get returns the text for key.
func (c AnswerChoices) Get(key ChoiceKey) string {
	switch key {
	case ChoiceA:
		return c.A
	case ChoiceB:
		return c.B
	case ChoiceC:
		return c.C
	case ChoiceD:
		return c.D
	}
	return ""
}

// Set returns a copy with key set to text.
func (c AnswerChoices) Set(key ChoiceKey, text string) AnswerChoices {
	switch key {
	case ChoiceA:
		c.A = text
	case ChoiceB:
		c.B = text
	case ChoiceC:
		c.C = text
	case ChoiceD:
		c.D = text
	}
	return c
}

// Empty reports whether all four choices are blank.
func (c AnswerChoices) Empty() bool {
	for _, k := range ChoiceKeys {
		if strings.TrimSpace(c.Get(k)) != "" {
			return false
		}
	}
	return true
}

// QuestionRecord is one parsed, normalized question.
type QuestionRecord struct {
	Section          Section       `json:"section"`
	Domain           string        `json:"domain"`
	QuestionType     string        `json:"questionType"`
	PassageText      string        `json:"passageText"`
	PassageImage     string        `json:"passageImage,omitempty"`
	QuestionText     string        `json:"questionText"`
	AnswerChoices    AnswerChoices `json:"answerChoices"`
	CorrectAnswer    ChoiceKey     `json:"correctAnswer"`
	Explanation      string        `json:"explanation"`
	ExplanationImage string        `json:"explanationImage,omitempty"`
	Difficulty       Difficulty    `json:"difficulty"`
}

// NewDraftRecord builds a hidden placeholder record.
func NewDraftRecord(section Section, domain, questionType string) QuestionRecord {
	return QuestionRecord{
		Section:       section,
		Domain:        domain,
		QuestionType:  questionType,
		CorrectAnswer: ChoiceA,
		Difficulty:    DifficultyMedium,
	}
}

// HasContent reports whether any field beyond the taxonomy triple is filled.
// CorrectAnswer and Difficulty always carry defaults and do not count.
func (r QuestionRecord) HasContent() bool {
	for _, s := range []string{r.PassageText, r.PassageImage, r.QuestionText, r.Explanation, r.ExplanationImage} {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return !r.AnswerChoices.Empty()
}

// Hidden is true for drafts: taxonomy present, no content.
func (r QuestionRecord) Hidden() bool {
	if r.Section == "" || strings.TrimSpace(r.Domain) == "" || strings.TrimSpace(r.QuestionType) == "" {
		return false
	}
	return !r.HasContent()
}

// WithDefaults fills the defaults every stored record carries: a valid
// correct answer, a difficulty, and letter choices for math-like sections.
func (r QuestionRecord) WithDefaults() QuestionRecord {
	r.CorrectAnswer = SanitizeChoiceKey(string(r.CorrectAnswer))
	if r.Difficulty == "" {
		r.Difficulty = DifficultyMedium
	}
	if r.Section.IsMathLike() && r.HasContent() {
		for _, k := range ChoiceKeys {
			if strings.TrimSpace(r.AnswerChoices.Get(k)) == "" {
				r.AnswerChoices = r.AnswerChoices.Set(k, string(k))
			}
		}
	}
	return r
}

// SanitizeChoiceKey maps loose input such as "b", "(C)" or "d." to a key,
// defaulting to A.
func SanitizeChoiceKey(raw string) ChoiceKey {
	s := strings.ToUpper(strings.Trim(strings.TrimSpace(raw), "()[]{}.:) "))
	for _, k := range ChoiceKeys {
		if s == string(k) {
			return k
		}
	}
	return ChoiceA
}

// ValidateMinimal checks what skip and retreat require: section and domain
// always, question type only for section A. Filled taxonomy values must be
// canonical.
func (r QuestionRecord) ValidateMinimal() ValidationErrors {
	var errs ValidationErrors
	if r.Section == "" {
		errs = append(errs, NewMissingFieldError(FieldSection))
	} else if !r.Section.Valid() {
		errs = append(errs, NewInvalidFormatError(FieldSection, string(r.Section)))
	}
	if strings.TrimSpace(r.Domain) == "" {
		errs = append(errs, NewMissingFieldError(FieldDomain))
	}
	if r.Section == SectionReadingWriting && strings.TrimSpace(r.QuestionType) == "" {
		errs = append(errs, NewMissingFieldError(FieldQuestionType))
	}
	if r.Section.Valid() {
		errs = append(errs, r.taxonomyErrors(DefaultTaxonomy())...)
	}
	return errs
}

// taxonomyErrors flags a domain outside the section and a question type
// that is neither a section type nor the placeholder. Blank values are left
// to the missing-field checks.
func (r QuestionRecord) taxonomyErrors(t *Taxonomy) ValidationErrors {
	var errs ValidationErrors
	if strings.TrimSpace(r.Domain) != "" && !containsValue(t.Domains(r.Section), r.Domain) {
		errs = append(errs, NewInvalidFormatError(FieldDomain, r.Domain))
	}
	qt := r.QuestionType
	if strings.TrimSpace(qt) != "" && qt != PlaceholderQuestionType && !containsValue(t.SectionQuestionTypes(r.Section), qt) {
		errs = append(errs, NewInvalidFormatError(FieldQuestionType, qt))
	}
	return errs
}

// Validate applies the full rules. Drafts only need the minimal fields.
func (r QuestionRecord) Validate() ValidationErrors {
	errs := r.ValidateMinimal()
	if r.Hidden() {
		return errs
	}
	if strings.TrimSpace(r.PassageText) == "" && strings.TrimSpace(r.PassageImage) == "" {
		errs = append(errs, NewMissingFieldError(FieldPassage))
	}
	if !r.Section.IsMathLike() && strings.TrimSpace(r.QuestionText) == "" {
		errs = append(errs, NewMissingFieldError(FieldQuestionText))
	}
	choiceFields := map[ChoiceKey]string{
		ChoiceA: FieldChoiceA,
		ChoiceB: FieldChoiceB,
		ChoiceC: FieldChoiceC,
		ChoiceD: FieldChoiceD,
	}
	for _, k := range ChoiceKeys {
		if strings.TrimSpace(r.AnswerChoices.Get(k)) == "" {
			errs = append(errs, NewMissingFieldError(choiceFields[k]))
		}
	}
	if SanitizeChoiceKey(string(r.CorrectAnswer)) != r.CorrectAnswer {
		errs = append(errs, NewInvalidFormatError(FieldCorrectAnswer, string(r.CorrectAnswer)))
	}
	return errs
}
