package cli

import (
	"github.com/spf13/cobra"

	"yyoom/internal/app"
)

func newCleanCachesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clean-caches",
		Short: "Remove cached packages, headers, metadata, indexes and rpmdb caches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := newAppService(cmd).CleanCaches(cmd.Context(), app.CleanRequest{})
			return err
		},
	}
}
