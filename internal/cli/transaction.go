package cli

import (
	"context"

	"github.com/spf13/cobra"

	"yyoom/internal/app"
)

type transactionOptions struct {
	Installs   []string
	Erases     []string
	Resolution resolutionOptions
}

func newTransactionCommand() *cobra.Command {
	opts := transactionOptions{}
	cmd := &cobra.Command{
		Use:   "transaction",
		Short: "Install and erase packages in one transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTransaction(cmd.Context(), cmd, opts)
		},
	}
	// Requirements may contain commas, so repeated flags are not split.
	cmd.Flags().StringArrayVar(&opts.Installs, "install", nil, "Requirement to install (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Erases, "erase", nil, "Requirement to erase (repeatable)")
	opts.Resolution.addFlags(cmd)
	return cmd
}

func runTransaction(ctx context.Context, cmd *cobra.Command, opts transactionOptions) error {
	skipMissing, preferRepos := opts.Resolution.resolve(cmd)
	service := newAppService(cmd)
	return service.Transact(ctx, app.TransactRequest{
		Installs:    opts.Installs,
		Erases:      opts.Erases,
		SkipMissing: skipMissing,
		PreferRepos: preferRepos,
	})
}
