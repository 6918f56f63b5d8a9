package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/krishnachadda/ResumeTailor/internal/observability"
	"github.com/krishnachadda/ResumeTailor/internal/pipeline"
)

type analyzeOutput struct {
	Analysis any `json:"analysis"`
	Signals  any `json:"signals"`
}

func newAnalyzeCmd() *cobra.Command {
	var f inputFlags
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a resume against a job description without generating documents",
		Long:  "Runs extraction, scoring and gap analysis locally. No provider key is needed.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, &f)
		},
	}
	f.register(cmd, false)
	return cmd
}

func runAnalyze(cmd *cobra.Command, f *inputFlags) error {
	ctx := cmd.Context()
	cfg, err := f.resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := setupCLILogger(cmd.ErrOrStderr(), cfg); err != nil {
		return err
	}

	resume, job, err := loadInputs(ctx, cfg)
	if err != nil {
		return err
	}
	req, err := cfg.Request(resume, job)
	if err != nil {
		return err
	}

	report, err := pipeline.New(nil, pipeline.Options{}).Analyze(ctx, req)
	if err != nil {
		return err
	}

	if cfg.OutDir != "" {
		if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		data, err := json.MarshalIndent(report.Analysis, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal analysis: %w", err)
		}
		if err := os.WriteFile(filepath.Join(cfg.OutDir, analysisFile), append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", analysisFile, err)
		}
	}

	if f.jsonOut {
		return writeJSON(cmd, analyzeOutput{Analysis: report.Analysis, Signals: report.Signals})
	}
	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintAnalysis(&report.Analysis)
	if cfg.Verbose {
		printer.PrintSignals(report.Signals)
	}
	return nil
}
