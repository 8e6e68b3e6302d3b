package cli

import (
	"context"

	"github.com/spf13/cobra"

	"yyoom/internal/app"
)

type buildDependenciesOptions struct {
	Resolution resolutionOptions
}

func newBuildDependenciesCommand() *cobra.Command {
	opts := buildDependenciesOptions{}
	cmd := &cobra.Command{
		Use:   "build-dependencies <source-rpm>",
		Short: "Install the build requirements of a source RPM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuildDependencies(cmd.Context(), cmd, args[0], opts)
		},
	}
	opts.Resolution.addFlags(cmd)
	return cmd
}

func runBuildDependencies(ctx context.Context, cmd *cobra.Command, path string, opts buildDependenciesOptions) error {
	skipMissing, preferRepos := opts.Resolution.resolve(cmd)
	service := newAppService(cmd)
	return service.BuildDependencies(ctx, app.BuildDependenciesRequest{
		SourcePackage: path,
		SkipMissing:   skipMissing,
		PreferRepos:   preferRepos,
	})
}
