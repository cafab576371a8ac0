package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"prep-backend/internal/analyses"
)

type exportOptions struct {
	section string
	out     string
}

func newExportCmd() *cobra.Command {
	opts := &exportOptions{}
	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Render an analysis as a plain-text report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}
			report, err := app.AnalysesService.Export(cmd.Context(), args[0], opts.section)
			if err != nil {
				return fmt.Errorf("failed to export analysis: %w", err)
			}
			warnDropped(cmd, app)
			if report.ArchiveKey != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "archived as %s\n", report.ArchiveKey)
			}
			if opts.out == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), report.Text)
				return err
			}
			if err := os.WriteFile(opts.out, []byte(report.Text), 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", opts.out)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.section, "section", "", "Single section: "+strings.Join(analyses.Sections, ", "))
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output file path (default: stdout)")
	_ = cmd.RegisterFlagCompletionFunc("section", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return analyses.Sections, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
