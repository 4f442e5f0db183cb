package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"clean-energy-predictor/internal/client"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	server  string
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "pricectl",
		Short: "Query a running Clean Energy Price Predictor",
		Long: `pricectl talks to the price predictor's JSON API. It can request a
purchasing price prediction, inspect the loaded model and read back the
prediction history.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.server, "server", "http://localhost:8501", "predictor base URL")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 5*time.Second, "request timeout")

	rootCmd.AddCommand(
		newPredictCmd(opts),
		newHealthCmd(opts),
		newModelCmd(opts),
		newRolesCmd(opts),
		newHistoryCmd(opts),
	)
	return rootCmd
}

func (o *rootOptions) client() *client.Client {
	return client.New(o.server, o.timeout)
}

func (o *rootOptions) requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, o.timeout)
}

// printJSON writes v indented, the format every read-only command uses.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
