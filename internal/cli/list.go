package cli

import (
	"github.com/spf13/cobra"

	"yyoom/internal/app"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "list <installed|available|extras>...",
		Short:     "List packages of one or more categories",
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: []string{"installed", "available", "extras"},
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := app.ParseListCategories(args)
			if err != nil {
				return err
			}
			return newAppService(cmd).List(cmd.Context(), app.ListRequest{Categories: categories})
		},
	}
}
