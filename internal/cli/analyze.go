package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"prep-backend/internal/analyses"
	"prep-backend/internal/extract"
)

type analyzeOptions struct {
	jdPath  string
	company string
	role    string
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a job description and save it as the active entry",
		Long: `Analyze a job description file (PDF, DOCX or plain text) and save the
result to history. Use --jd - to read plain text from stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.jdPath, "jd", "", "Job description file, or - for stdin")
	cmd.Flags().StringVar(&opts.company, "company", "", "Company name")
	cmd.Flags().StringVar(&opts.role, "role", "", "Role title")
	_ = cmd.MarkFlagRequired("jd")
	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *analyzeOptions) error {
	app, err := appFromContext(cmd.Context())
	if err != nil {
		return err
	}
	text, err := readJD(cmd, opts.jdPath)
	if err != nil {
		return err
	}

	result, err := app.AnalysesService.Analyze(cmd.Context(), analyses.AnalyzeInput{
		JDText:  text,
		Company: opts.company,
		Role:    opts.role,
	})
	if err != nil {
		return fmt.Errorf("failed to analyze job description: %w", err)
	}

	out := cmd.OutOrStdout()
	if result.Warning != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", result.Warning)
	}
	warnDropped(cmd, app)
	e := result.Entry
	fmt.Fprintf(out, "Saved analysis %s\n", e.ID)
	fmt.Fprintf(out, "Readiness: %d/100\n", e.BaseScore)
	fmt.Fprintf(out, "Skills: %s\n", strings.Join(e.ExtractedSkills.AllSkills(), ", "))
	if e.CompanyIntel != nil {
		fmt.Fprintf(out, "Company: %s (%s)\n", e.CompanyIntel.CompanyName, e.CompanyIntel.SizeCategory)
	}
	return nil
}

func readJD(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		raw, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), extract.MaxUploadBytes+1))
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		if len(raw) > extract.MaxUploadBytes {
			return "", extract.ErrTooLarge
		}
		return string(raw), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open job description: %w", err)
	}
	defer f.Close()
	text, err := extract.JobDescription(cmd.Context(), f, "", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("read job description %s: %w", path, err)
	}
	return text, nil
}
