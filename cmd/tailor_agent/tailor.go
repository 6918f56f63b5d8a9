package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/krishnachadda/ResumeTailor/internal/observability"
	"github.com/krishnachadda/ResumeTailor/internal/pipeline"
	"github.com/krishnachadda/ResumeTailor/internal/types"
)

// Output file names written by --out
const (
	resumeFile      = "resume.md"
	coverLetterFile = "cover_letter.md"
	analysisFile    = "analysis.json"
)

func newTailorCmd() *cobra.Command {
	var f inputFlags
	cmd := &cobra.Command{
		Use:   "tailor",
		Short: "Write a tailored resume and cover letter for a job",
		Long: `Scores the resume against the job description, then writes a resume and a cover letter in the chosen template.

Configuration can be loaded from a JSON or YAML file using --config. Command-line arguments override config file values.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTailor(cmd, &f)
		},
	}
	f.register(cmd, true)
	return cmd
}

func runTailor(cmd *cobra.Command, f *inputFlags) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := f.resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := setupCLILogger(cmd.ErrOrStderr(), cfg); err != nil {
		return err
	}

	orch, closeClient, err := newOrchestrator(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeClient()

	resume, job, err := loadInputs(ctx, cfg)
	if err != nil {
		return err
	}
	req, err := cfg.Request(resume, job)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	ro := pipeline.RunOptions{}
	if cfg.Verbose && !f.jsonOut {
		ro.OnState = func(e pipeline.StateEvent) {
			fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s: %s\n", e.Status, e.State, e.Message)
		}
	}

	result, err := orch.TailorWithOptions(ctx, req, ro)
	if err != nil {
		return err
	}

	if cfg.OutDir != "" {
		if err := writeResult(cfg.OutDir, result); err != nil {
			return err
		}
	}
	if f.jsonOut {
		return writeJSON(cmd, result)
	}
	printer.PrintAnalysis(&result.Analysis)
	printer.PrintDocument("Resume", result.Resume)
	printer.PrintDocument("Cover Letter", result.CoverLetter)
	if cfg.OutDir != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Results written to %s\n", cfg.OutDir)
	}
	return nil
}

// writeResult stores the documents and the analysis under dir
func writeResult(dir string, result *types.TailoringResult) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	analysis, err := json.MarshalIndent(result.Analysis, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}
	files := map[string][]byte{
		resumeFile:      []byte(result.Resume + "\n"),
		coverLetterFile: []byte(result.CoverLetter + "\n"),
		analysisFile:    append(analysis, '\n'),
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

