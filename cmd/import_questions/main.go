// Command import_questions loads pasted CSV question lines from a file or
// standard input and walks them through the review wizard in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"question-bank/internal/adapter/terminal"
	"question-bank/internal/app"
	"question-bank/internal/config"
	"question-bank/internal/dto"
	"question-bank/internal/logger"
	"question-bank/internal/validation"

	"go.uber.org/zap"
)

func main() {
	file := flag.String("file", "-", "CSV file to import, - for standard input")
	yes := flag.Bool("yes", false, "import every parsed record without reviewing")
	dryRun := flag.Bool("dry-run", false, "print the parse report and exit")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := run(context.Background(), cfg, *file, *yes, *dryRun); err != nil {
		if errors.Is(err, errQuit) {
			fmt.Println("Import cancelled, nothing was saved.")
			return
		}
		logger.Get().Error("Import failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, file string, yes, dryRun bool) error {
	text, err := terminal.FileSource{Path: file, MaxBytes: int64(cfg.Import.MaxBytes)}.Text()
	if err != nil {
		return err
	}
	if errs := validation.NewValidator(cfg.Import.MaxBytes, cfg.Import.MaxLines).ValidateImportText(text); len(errs) > 0 {
		return errs
	}

	if dryRun {
		return previewOnly(cfg, text, os.Stdout)
	}

	container, err := app.Build(cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	w := &wizard{imports: container.Imports, out: os.Stdout, yes: yes}

	// The paste may have consumed stdin, so answers come from the terminal.
	var in io.Reader = os.Stdin
	if (file == "" || file == "-") && !yes {
		tty, err := os.Open("/dev/tty")
		if err != nil {
			return fmt.Errorf("interactive review needs a terminal, use -yes or -file: %w", err)
		}
		defer tty.Close()
		in = tty
	}
	w.prompt = terminal.NewPrompter(in, os.Stdout)

	n, err := w.run(ctx, text)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d question(s).\n", n)
	return nil
}

// previewOnly prints the parse report without opening the database or cache.
func previewOnly(cfg *config.Config, text string, out io.Writer) error {
	parser, err := app.NewParser(cfg)
	if err != nil {
		return err
	}
	w := &wizard{out: out}
	w.printReport(dto.NewParseReportResponse(parser.Parse(text)))
	return nil
}
