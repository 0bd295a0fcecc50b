package main

import (
	"fmt"

	"github.com/aleister1102/pagewatch/internal/notifier"
	"github.com/spf13/cobra"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var pages []string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check every page (or the selected pages) once and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := opts.loadConfig()
			if err != nil {
				return err
			}

			a, err := newApp(cfg, log)
			if err != nil {
				return err
			}
			defer closeLogged(a, log, "history store")

			ctx := commandContext(cmd)
			if err := a.verifyEmail(ctx); err != nil {
				return err
			}

			outcomes, err := a.service.RunOnce(ctx, pages...)
			for _, outcome := range outcomes {
				fmt.Fprintln(cmd.OutOrStdout(), notifier.StatusLine(outcome))
			}
			return err
		},
	}

	cmd.Flags().StringSliceVarP(&pages, "page", "p", nil, "Page name to check (repeatable, default all)")
	return cmd
}
