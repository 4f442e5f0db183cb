package main

import (
	"fmt"

	"clean-energy-predictor/internal/features"

	"github.com/spf13/cobra"
)

func newPredictCmd(opts *rootOptions) *cobra.Command {
	rec := features.Default()
	var role string

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the purchasing price per kWh",
		Long: `Sends one feature record to the predictor and prints the predicted
purchasing price together with the advice for the chosen user type.
Unset flags use the same defaults as the web form.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := features.ParseRole(role)
			if err != nil {
				return fmt.Errorf("%w (available: household, energy_manager, policy_planner)", err)
			}

			ctx, cancel := opts.requestContext(cmd)
			defer cancel()

			res, err := opts.client().Predict(ctx, rec, r)
			if err != nil {
				return fmt.Errorf("predicting price: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), res.Text())
			return nil
		},
	}

	cmd.Flags().Float64Var(&rec.UnmetKWh, "unmet", rec.UnmetKWh, "unmet energy demand (kWh)")
	cmd.Flags().Float64Var(&rec.LoadKWh, "load", rec.LoadKWh, "load (kWh)")
	cmd.Flags().IntVar(&rec.Hour, "hour", rec.Hour, "hour of day (0-23)")
	cmd.Flags().Float64Var(&rec.NaturalGasPrice, "gas-price", rec.NaturalGasPrice, "natural gas price ($/M Btu)")
	cmd.Flags().StringVar(&role, "role", features.DefaultRole.Key(), "user type: household, energy_manager or policy_planner")

	return cmd
}
