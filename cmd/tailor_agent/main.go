// Package main provides the tailor_agent CLI: one-shot tailoring and analysis, the HTTP API
// server and the queue worker.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/krishnachadda/ResumeTailor/internal/pipeline"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tailor_agent",
		Short:         "Resume and cover letter tailoring engine",
		Long:          "tailor_agent scores a resume against a job description and writes a tailored resume and cover letter in the chosen template.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newTailorCmd(), newAnalyzeCmd(), newTemplatesCmd(), newServeCmd(), newWorkerCmd())
	return root
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", describeError(err))
		os.Exit(1)
	}
}

// describeError appends a hint for classified pipeline failures
func describeError(err error) string {
	c := pipeline.Classify(err)
	switch {
	case c.Kind == pipeline.KindInternal || c.Kind == "":
		return err.Error()
	case c.Retryable:
		return fmt.Sprintf("%v (%s; retrying later may succeed)", err, c.Kind)
	default:
		return fmt.Sprintf("%v (%s)", err, c.Kind)
	}
}
