package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uyouii/geochron/weighted"
)

// NewWMeanCommand creates the wmean command.
func NewWMeanCommand(rootOpts *RootOptions) *cobra.Command {
	var corrected bool

	cmd := &cobra.Command{
		Use:   "wmean <dataset>",
		Short: "Inverse-variance weighted mean and MSWD of the values section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("corrected") {
				corrected = rootOpts.Config.WMean.Corrected
			}
			return runWMean(rootOpts, args[0], corrected, cmd)
		},
	}
	cmd.Flags().BoolVar(&corrected, "corrected", false, "scale the uncertainty by sqrt(MSWD)")

	return cmd
}

func runWMean(opts *RootOptions, path string, corrected bool, cmd *cobra.Command) error {
	values, err := loadValues(path)
	if err != nil {
		return err
	}

	res, err := weighted.WeightedMeanAge(cmd.Context(), values, corrected)
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		return writeJSON(cmd, res)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "mean: %s\nmswd: %s\nn: %d\ncorrected: %v\n",
		formatValue(res.Mean.Mean, res.Mean.Sigma), formatFloat(res.MSWD), res.N, res.Corrected)
	return nil
}
