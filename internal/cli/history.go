package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"prep-backend/internal/bootstrap"
)

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List saved analyses, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}
			entries, warning, err := app.AnalysesService.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list analyses: %w", err)
			}
			if warning != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warning)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved analyses.")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCREATED\tCOMPANY\tROLE\tSCORE")
			for _, e := range entries {
				s := e.Summarize()
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", s.ID, s.CreatedAt, dash(s.Company), dash(s.Role), s.FinalScore)
			}
			return tw.Flush()
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Print an analysis as JSON and mark it active",
		Long:  "Print an analysis as JSON. Without an id the active entry is shown, or the latest when none is active.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			entry, err := app.AnalysesService.Open(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to open analysis: %w", err)
			}
			warnDropped(cmd, app)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(entry)
		},
	}
}

func newConfidenceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "confidence ID SKILL LEVEL",
		Short: "Mark a skill as know or practice and recompute the final score",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}
			skill := strings.TrimSpace(args[1])
			entry, err := app.AnalysesService.SetConfidence(cmd.Context(), args[0], skill, args[2])
			if err != nil {
				return fmt.Errorf("failed to update confidence: %w", err)
			}
			warnDropped(cmd, app)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\nFinal score: %d/100 (base %d)\n",
				skill, entry.SkillConfidenceMap[skill], entry.FinalScore, entry.BaseScore)
			return nil
		},
	}
}

// warnDropped prints the pending dropped-records notice, if any, to stderr.
func warnDropped(cmd *cobra.Command, app *bootstrap.App) {
	warning, err := app.History.HistoryWarning(cmd.Context())
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		return
	}
	if warning != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warning)
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
