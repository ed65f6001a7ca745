package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"question-bank/cmd/seed_questions/internal/seedmodels"
	"question-bank/internal/app"
	"question-bank/internal/config"
	"question-bank/internal/domain"
	"question-bank/internal/logger"
	"question-bank/internal/service"

	"go.uber.org/zap"
)

const defaultSeedFile = "config/seed_questions.json"

func firstN(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

func main() {
	seedFile := flag.String("file", defaultSeedFile, "JSON seed file")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Loading seed data from file", zap.String("path", *seedFile))
	byteValue, err := os.ReadFile(*seedFile)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", *seedFile), zap.Error(err))
	}
	var sections []seedmodels.SeedSection
	if err := json.Unmarshal(byteValue, &sections); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}

	container, err := app.Build(cfg)
	if err != nil {
		log.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer container.Close()

	for _, sec := range sections {
		if err := seedSection(ctx, container.Exports, container.Sink, log, domain.DefaultTaxonomy(), sec); err != nil {
			log.Error("Error seeding section, nothing was stored for it", zap.String("section", sec.Section), zap.Error(err))
		}
	}
	log.Info("Seeding completed.")
}

// seedSection stores every question of sec in one batch. A section that
// already has questions is left alone.
func seedSection(
	ctx context.Context,
	exports service.ExportService,
	sink domain.QuestionSink,
	log *zap.Logger,
	tax *domain.Taxonomy,
	sec seedmodels.SeedSection,
) error {
	section := domain.Section(sec.Section)
	existing, err := exports.Count(ctx, section)
	if err != nil {
		return fmt.Errorf("error counting questions in %s: %w", sec.Section, err)
	}
	if existing > 0 {
		log.Info("Section already seeded", zap.String("section", sec.Section), zap.Int("questions", existing))
		return nil
	}

	records, err := seedRecords(tax, sec)
	if err != nil {
		return err
	}
	if err := sink.Persist(ctx, records); err != nil {
		return err
	}
	log.Info("Seeded section", zap.String("section", sec.Section), zap.Int("questions", len(records)))
	return nil
}

// seedRecords flattens sec into validated records. Any unknown taxonomy
// entry or incomplete question fails the whole section.
func seedRecords(tax *domain.Taxonomy, sec seedmodels.SeedSection) ([]domain.QuestionRecord, error) {
	section := domain.Section(sec.Section)
	if !section.Valid() {
		return nil, fmt.Errorf("unknown section %q", sec.Section)
	}
	var records []domain.QuestionRecord
	for _, d := range sec.Domains {
		for _, qt := range d.QuestionTypes {
			if !tax.Contains(section, d.Name, qt.Name) {
				return nil, fmt.Errorf("%s / %s / %s is not in the taxonomy", sec.Section, d.Name, qt.Name)
			}
			for _, q := range qt.Questions {
				rec := domain.QuestionRecord{
					Section:       section,
					Domain:        d.Name,
					QuestionType:  qt.Name,
					PassageText:   q.Passage,
					QuestionText:  q.Question,
					AnswerChoices: q.Choices,
					CorrectAnswer: domain.ChoiceKey(q.Answer),
					Explanation:   q.Explanation,
					Difficulty:    domain.Difficulty(q.Difficulty),
				}.WithDefaults()
				if errs := rec.Validate(); len(errs) > 0 {
					return nil, fmt.Errorf("question %q: %w", firstN(q.Question+q.Passage, 40), errs)
				}
				records = append(records, rec)
			}
		}
	}
	return records, nil
}
