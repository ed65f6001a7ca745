package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTaxonomy(t *testing.T) {
	tax := DefaultTaxonomy()

	sections := tax.Sections()
	require.Len(t, sections, 2)
	assert.Equal(t, string(SectionReadingWriting), sections[0].Value)
	assert.Equal(t, string(SectionMath), sections[1].Value)

	assert.Len(t, tax.Domains(SectionReadingWriting), 4)
	assert.Len(t, tax.Domains(SectionMath), 4)
	assert.Nil(t, tax.Domains("Science"))

	algebra := tax.QuestionTypes(SectionMath, "Algebra")
	require.NotEmpty(t, algebra)
	assert.Equal(t, "Linear equations in one variable", algebra[0].Value)
	assert.Nil(t, tax.QuestionTypes(SectionMath, "Craft and Structure"))

	assert.Len(t, tax.SectionQuestionTypes(SectionReadingWriting), 11)
	assert.Len(t, tax.Difficulties(), 3)
}

func TestTaxonomy_Contains(t *testing.T) {
	tax := DefaultTaxonomy()
	assert.True(t, tax.Contains(SectionMath, "Algebra", "Linear functions"))
	assert.True(t, tax.Contains(SectionMath, "Algebra", ""))
	assert.True(t, tax.Contains(SectionReadingWriting, "", ""))
	assert.False(t, tax.Contains(SectionMath, "Algebra", "Transitions"))
	assert.False(t, tax.Contains(SectionMath, "Expression of Ideas", ""))
	assert.False(t, tax.Contains("History", "", ""))
}

func TestTaxonomy_ValuesAreUnique(t *testing.T) {
	tax := DefaultTaxonomy()
	for _, sec := range tax.Sections() {
		seen := map[string]bool{}
		for _, d := range tax.Domains(Section(sec.Value)) {
			for _, qt := range tax.QuestionTypes(Section(sec.Value), d.Value) {
				assert.False(t, seen[qt.Value], "duplicate question type %q in %s", qt.Value, sec.Value)
				seen[qt.Value] = true
			}
		}
	}
}
