package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent predictions",
		Long:  `Displays the most recent predictions recorded by the server, newest first. History must be enabled on the server (DATA_PATH).`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.requestContext(cmd)
			defer cancel()

			hist, err := opts.client().History(ctx, limit)
			if err != nil {
				return fmt.Errorf("fetching history: %w", err)
			}

			out := cmd.OutOrStdout()
			if hist.Count == 0 {
				fmt.Fprintln(out, "No predictions recorded")
				return nil
			}

			fmt.Fprintf(out, "%-20s  %-16s  %10s  %4s\n", "Time", "Role", "Price", "Hour")
			fmt.Fprintln(out, "----------------------------------------------------------")
			for _, p := range hist.Predictions {
				fmt.Fprintf(out, "%-20s  %-16s  %10s  %4d\n",
					p.Timestamp.Format(time.DateTime), p.Role.Key(), p.FormattedPrice, p.Features.Hour)
			}
			fmt.Fprintln(out, "----------------------------------------------------------")
			fmt.Fprintf(out, "%d predictions\n", hist.Count)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of predictions (default: server limit)")
	return cmd
}
