package main

import (
	"github.com/spf13/cobra"

	"github.com/krishnachadda/ResumeTailor/internal/observability"
	"github.com/krishnachadda/ResumeTailor/internal/templates"
)

func newTemplatesCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the available resume templates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			list := templates.List()
			if jsonOut {
				return writeJSON(cmd, list)
			}
			observability.NewPrinter(cmd.OutOrStdout()).PrintTemplates(list)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the catalog as JSON")
	return cmd
}
