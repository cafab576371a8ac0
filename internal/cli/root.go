package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"prep-backend/internal/bootstrap"
)

// Builder constructs the application for one command run.
type Builder func(ctx context.Context, withRouter bool) (*bootstrap.App, error)

type appKeyType struct{}

var appKey = appKeyType{}

// NewRootCommand returns the prepctl command tree. build runs once per
// invocation before any subcommand executes; the caller owns the built app.
func NewRootCommand(build Builder) *cobra.Command {
	root := &cobra.Command{
		Use:   "prepctl",
		Short: "Turn job descriptions into interview preparation plans",
		Long: `prepctl analyzes a job description and stores the result in the same
history the API serves: extracted skills, company intel, round mapping,
a round-wise checklist, a 7-day plan, likely questions and a readiness score.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app, err := build(cmd.Context(), cmd.Name() == "serve")
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, app))
			return nil
		},
	}

	root.AddCommand(
		newAnalyzeCmd(),
		newHistoryCmd(),
		newShowCmd(),
		newConfidenceCmd(),
		newExportCmd(),
		newServeCmd(),
	)
	return root
}

// Execute runs the command tree with args and closes the app afterwards,
// whether or not the command succeeded.
func Execute(ctx context.Context, build Builder, args []string) error {
	var app *bootstrap.App
	root := NewRootCommand(func(ctx context.Context, withRouter bool) (*bootstrap.App, error) {
		built, err := build(ctx, withRouter)
		app = built
		return built, err
	})
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	app.Close()
	return err
}

func appFromContext(ctx context.Context) (*bootstrap.App, error) {
	if app, ok := ctx.Value(appKey).(*bootstrap.App); ok && app != nil {
		return app, nil
	}
	return nil, errors.New("application not initialized")
}
