package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/aleister1102/pagewatch/internal/common"
	"github.com/aleister1102/pagewatch/internal/datastore"
	"github.com/aleister1102/pagewatch/internal/notifier"
	"github.com/spf13/cobra"
)

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var (
		page  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the most recent recorded checks of a page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cfg.StorageConfig.HistoryDBPath == "" {
				return common.NewConfigurationError("storage", "history_db_path", "check history is disabled")
			}
			if _, ok := cfg.FindPage(page); !ok {
				return common.WrapError(common.ErrNotFound, fmt.Sprintf("unknown page '%s'", page))
			}

			store, err := datastore.NewHistoryStore(cfg.StorageConfig.HistoryDBPath, log)
			if err != nil {
				return err
			}
			defer closeLogged(store, log, "history store")

			entries, err := store.Recent(commandContext(cmd), page, limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CHECKED AT\tKIND\t+LINES\t-LINES\tERROR")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
					e.CheckedAt.Format(notifier.TimestampLayout), e.Kind, e.LinesAdded, e.LinesDeleted, e.Error.String)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&page, "page", "p", "", "Page name")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of entries to show")
	_ = cmd.MarkFlagRequired("page")
	return cmd
}
