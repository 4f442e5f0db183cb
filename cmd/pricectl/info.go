package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the predictor is serving",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.requestContext(cmd)
			defer cancel()

			if err := opts.client().Health(ctx); err != nil {
				return fmt.Errorf("health check: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func newModelCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "model",
		Short: "Show the loaded scaler and model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.requestContext(cmd)
			defer cancel()

			info, err := opts.client().ModelInfo(ctx)
			if err != nil {
				return fmt.Errorf("fetching model info: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), info)
		},
	}
}

func newRolesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List user types and their advice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.requestContext(cmd)
			defer cancel()

			roles, err := opts.client().Roles(ctx)
			if err != nil {
				return fmt.Errorf("fetching roles: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, r := range roles {
				fmt.Fprintf(out, "%-16s %s\n  %s\n", r.Key, r.Label, r.Advice)
			}
			return nil
		},
	}
}
