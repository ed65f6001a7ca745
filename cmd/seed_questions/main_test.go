package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"testing"

	"question-bank/cmd/seed_questions/internal/seedmodels"
	"question-bank/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeExports struct {
	counts map[domain.Section]int
}

func (f fakeExports) Export(context.Context, io.Writer, domain.Section) (int, error) { return 0, nil }

func (f fakeExports) Count(_ context.Context, section domain.Section) (int, error) {
	return f.counts[section], nil
}

type sinkFunc func(ctx context.Context, records []domain.QuestionRecord) error

func (f sinkFunc) Persist(ctx context.Context, records []domain.QuestionRecord) error {
	return f(ctx, records)
}

func loadSeedFile(t *testing.T) []seedmodels.SeedSection {
	t.Helper()
	b, err := os.ReadFile("../../" + defaultSeedFile)
	require.NoError(t, err)
	var sections []seedmodels.SeedSection
	require.NoError(t, json.Unmarshal(b, &sections))
	return sections
}

func TestSeedFileIsValid(t *testing.T) {
	tax := domain.DefaultTaxonomy()
	for _, sec := range loadSeedFile(t) {
		records, err := seedRecords(tax, sec)
		require.NoError(t, err, sec.Section)
		assert.NotEmpty(t, records)
		for _, rec := range records {
			assert.False(t, rec.Hidden())
		}
	}
}

func TestSeedRecords_RejectsUnknownTaxonomy(t *testing.T) {
	sec := seedmodels.SeedSection{
		Section: "Math",
		Domains: []seedmodels.SeedDomain{{
			Name:          "Algebra",
			QuestionTypes: []seedmodels.SeedQuestionType{{Name: "Transitions"}},
		}},
	}
	_, err := seedRecords(domain.DefaultTaxonomy(), sec)
	assert.ErrorContains(t, err, "not in the taxonomy")

	_, err = seedRecords(domain.DefaultTaxonomy(), seedmodels.SeedSection{Section: "History"})
	assert.ErrorContains(t, err, "unknown section")
}

func TestSeedRecords_IncompleteQuestion(t *testing.T) {
	sec := seedmodels.SeedSection{
		Section: "Reading and Writing",
		Domains: []seedmodels.SeedDomain{{
			Name: "Craft and Structure",
			QuestionTypes: []seedmodels.SeedQuestionType{{
				Name:      "Words in Context",
				Questions: []seedmodels.SeedQuestion{{Passage: "Text.", Question: "Why?", Choices: domain.AnswerChoices{A: "x"}}},
			}},
		}},
	}
	_, err := seedRecords(domain.DefaultTaxonomy(), sec)
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has(domain.FieldChoiceB))
}

func TestSeedSection(t *testing.T) {
	sections := loadSeedFile(t)
	tax := domain.DefaultTaxonomy()
	ctx := context.Background()

	var persisted []domain.QuestionRecord
	sink := sinkFunc(func(_ context.Context, records []domain.QuestionRecord) error {
		persisted = append(persisted, records...)
		return nil
	})

	err := seedSection(ctx, fakeExports{counts: map[domain.Section]int{domain.SectionReadingWriting: 4}}, sink, zap.NewNop(), tax, sections[0])
	require.NoError(t, err)
	assert.Empty(t, persisted, "seeded sections are skipped")

	err = seedSection(ctx, fakeExports{}, sink, zap.NewNop(), tax, sections[1])
	require.NoError(t, err)
	assert.Len(t, persisted, 2)

	failing := sinkFunc(func(context.Context, []domain.QuestionRecord) error { return errors.New("db down") })
	assert.Error(t, seedSection(ctx, fakeExports{}, failing, zap.NewNop(), tax, sections[1]))
}
