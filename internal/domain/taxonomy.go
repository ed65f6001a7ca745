package domain

// Candidate is one canonical taxonomy value with the loose spellings users
// paste for it. Synonyms are matched as whole-word phrases after cleaning.
type Candidate struct {
	Value    string
	Synonyms []string
}

// DomainSpec is a domain and its question types.
type DomainSpec struct {
	Candidate
	QuestionTypes []Candidate
}

// SectionSpec is a section and its domains.
type SectionSpec struct {
	Candidate
	Domains []DomainSpec
}

// Taxonomy is the static reference data the normalizer matches against.
type Taxonomy struct {
	sections     []SectionSpec
	difficulties []Candidate
}

// DefaultTaxonomy returns the digital SAT taxonomy.
func DefaultTaxonomy() *Taxonomy {
	return &Taxonomy{sections: satSections, difficulties: satDifficulties}
}

// NewTaxonomy builds a taxonomy from custom tables.
func NewTaxonomy(sections []SectionSpec, difficulties []Candidate) *Taxonomy {
	return &Taxonomy{sections: sections, difficulties: difficulties}
}

// Sections returns the section candidates in table order.
func (t *Taxonomy) Sections() []Candidate {
	out := make([]Candidate, 0, len(t.sections))
	for _, s := range t.sections {
		out = append(out, s.Candidate)
	}
	return out
}

// Domains returns the domain candidates of a section.
func (t *Taxonomy) Domains(section Section) []Candidate {
	spec, ok := t.section(section)
	if !ok {
		return nil
	}
	out := make([]Candidate, 0, len(spec.Domains))
	for _, d := range spec.Domains {
		out = append(out, d.Candidate)
	}
	return out
}

// QuestionTypes returns the types of one domain in a section.
func (t *Taxonomy) QuestionTypes(section Section, domain string) []Candidate {
	spec, ok := t.section(section)
	if !ok {
		return nil
	}
	for _, d := range spec.Domains {
		if d.Value == domain {
			return d.QuestionTypes
		}
	}
	return nil
}

// SectionQuestionTypes returns every type across the section's domains.
func (t *Taxonomy) SectionQuestionTypes(section Section) []Candidate {
	spec, ok := t.section(section)
	if !ok {
		return nil
	}
	var out []Candidate
	for _, d := range spec.Domains {
		out = append(out, d.QuestionTypes...)
	}
	return out
}

// Difficulties returns the difficulty candidates.
func (t *Taxonomy) Difficulties() []Candidate {
	return t.difficulties
}

// Contains reports whether the (section, domain, questionType) triple is
// canonical. Empty domain or type are not checked.
func (t *Taxonomy) Contains(section Section, domain, questionType string) bool {
	if _, ok := t.section(section); !ok {
		return false
	}
	if domain == "" {
		return true
	}
	if !containsValue(t.Domains(section), domain) {
		return false
	}
	if questionType == "" {
		return true
	}
	return containsValue(t.QuestionTypes(section, domain), questionType)
}

func (t *Taxonomy) section(section Section) (SectionSpec, bool) {
	for _, s := range t.sections {
		if s.Value == string(section) {
			return s, true
		}
	}
	return SectionSpec{}, false
}

func containsValue(candidates []Candidate, value string) bool {
	for _, c := range candidates {
		if c.Value == value {
			return true
		}
	}
	return false
}

var satDifficulties = []Candidate{
	{Value: string(DifficultyEasy), Synonyms: []string{"e", "easy", "simple", "basic", "low", "1"}},
	{Value: string(DifficultyMedium), Synonyms: []string{"m", "med", "moderate", "intermediate", "mid", "normal", "2"}},
	{Value: string(DifficultyHard), Synonyms: []string{"h", "difficult", "challenging", "advanced", "high", "3"}},
}

var satSections = []SectionSpec{
	{
		Candidate: Candidate{
			Value:    string(SectionReadingWriting),
			Synonyms: []string{"reading & writing", "reading", "writing", "rw", "r&w", "english", "verbal", "ebrw", "literacy"},
		},
		Domains: []DomainSpec{
			{
				Candidate: Candidate{Value: "Information and Ideas", Synonyms: []string{"information & ideas", "info and ideas", "information", "ideas"}},
				QuestionTypes: []Candidate{
					{Value: "Central Ideas and Details", Synonyms: []string{"central idea", "central ideas", "main idea", "details"}},
					{Value: "Command of Evidence (Textual)", Synonyms: []string{"textual evidence", "command of evidence textual", "evidence textual"}},
					{Value: "Command of Evidence (Quantitative)", Synonyms: []string{"quantitative evidence", "command of evidence quantitative", "evidence quantitative", "graph", "table"}},
					{Value: "Inferences", Synonyms: []string{"inference", "infer"}},
				},
			},
			{
				Candidate: Candidate{Value: "Craft and Structure", Synonyms: []string{"craft & structure", "craft", "structure"}},
				QuestionTypes: []Candidate{
					{Value: "Words in Context", Synonyms: []string{"word in context", "vocabulary", "vocab", "wic"}},
					{Value: "Text Structure and Purpose", Synonyms: []string{"text structure", "purpose", "structure and purpose"}},
					{Value: "Cross-Text Connections", Synonyms: []string{"cross-text", "cross text", "crosstext", "paired passages", "two texts"}},
				},
			},
			{
				Candidate: Candidate{Value: "Expression of Ideas", Synonyms: []string{"expression", "expression of idea"}},
				QuestionTypes: []Candidate{
					{Value: "Rhetorical Synthesis", Synonyms: []string{"synthesis", "rhetorical", "notes"}},
					{Value: "Transitions", Synonyms: []string{"transition", "transition words"}},
				},
			},
			{
				Candidate: Candidate{Value: "Standard English Conventions", Synonyms: []string{"conventions", "english conventions", "grammar", "sec"}},
				QuestionTypes: []Candidate{
					{Value: "Boundaries", Synonyms: []string{"boundary", "punctuation", "sentence boundaries"}},
					{Value: "Form, Structure, and Sense", Synonyms: []string{"form structure and sense", "form structure sense", "agreement", "verb tense", "subject-verb agreement"}},
				},
			},
		},
	},
	{
		Candidate: Candidate{
			Value:    string(SectionMath),
			Synonyms: []string{"maths", "mathematics", "quantitative", "quant"},
		},
		Domains: []DomainSpec{
			{
				Candidate: Candidate{Value: "Algebra", Synonyms: []string{"alg", "algebraic"}},
				QuestionTypes: []Candidate{
					{Value: "Linear equations in one variable", Synonyms: []string{"linear equations", "linear equation", "linear equation in one variable", "one-variable linear equations"}},
					{Value: "Linear functions", Synonyms: []string{"linear function", "slope", "slope-intercept"}},
					{Value: "Linear equations in two variables", Synonyms: []string{"linear equation in two variables", "two-variable linear equations", "equations in two variables"}},
					{Value: "Systems of two linear equations in two variables", Synonyms: []string{"systems of linear equations", "systems of two linear equations", "system of equations", "systems of equations", "linear systems"}},
					{Value: "Linear inequalities in one or two variables", Synonyms: []string{"linear inequalities", "linear inequality", "inequalities", "inequality"}},
				},
			},
			{
				Candidate: Candidate{Value: "Advanced Math", Synonyms: []string{"advanced mathematics", "adv math", "advanced"}},
				QuestionTypes: []Candidate{
					{Value: "Nonlinear functions", Synonyms: []string{"nonlinear function", "non-linear functions", "quadratic functions", "exponential functions", "polynomials"}},
					{Value: "Nonlinear equations in one variable and systems of equations in two variables", Synonyms: []string{"nonlinear equations", "non-linear equations", "quadratic equations", "nonlinear systems"}},
					{Value: "Equivalent expressions", Synonyms: []string{"equivalent expression", "expressions", "factoring", "simplifying expressions"}},
				},
			},
			{
				Candidate: Candidate{Value: "Problem-Solving and Data Analysis", Synonyms: []string{"problem solving and data analysis", "problem solving", "data analysis", "psda"}},
				QuestionTypes: []Candidate{
					{Value: "Ratios, rates, proportional relationships, and units", Synonyms: []string{"ratios", "rates", "proportions", "proportional relationships", "units", "unit conversion"}},
					{Value: "Percentages", Synonyms: []string{"percentage", "percent", "percents"}},
					{Value: "One-variable data: Distributions and measures of center and spread", Synonyms: []string{"one-variable data", "distributions", "mean median", "measures of center", "center and spread"}},
					{Value: "Two-variable data: Models and scatterplots", Synonyms: []string{"two-variable data", "scatterplots", "scatterplot", "models"}},
					{Value: "Probability and conditional probability", Synonyms: []string{"probability", "conditional probability"}},
					{Value: "Inference from sample statistics and margin of error", Synonyms: []string{"margin of error", "sample statistics", "sampling"}},
					{Value: "Evaluating statistical claims: Observational studies and experiments", Synonyms: []string{"statistical claims", "observational studies", "experiments", "study design"}},
				},
			},
			{
				Candidate: Candidate{Value: "Geometry and Trigonometry", Synonyms: []string{"geometry & trigonometry", "geometry", "trigonometry", "trig", "geo"}},
				QuestionTypes: []Candidate{
					{Value: "Area and volume", Synonyms: []string{"area", "volume", "surface area"}},
					{Value: "Lines, angles, and triangles", Synonyms: []string{"lines angles and triangles", "angles", "triangles", "lines and angles"}},
					{Value: "Right triangles and trigonometry", Synonyms: []string{"right triangles", "trigonometry", "trig ratios", "sohcahtoa"}},
					{Value: "Circles", Synonyms: []string{"circle", "arcs", "radians"}},
				},
			},
		},
	},
}
