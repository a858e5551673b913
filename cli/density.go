package cli

import (
	"github.com/spf13/cobra"
	"github.com/uyouii/geochron/kde"
)

// NewDensityCommand creates the density command.
func NewDensityCommand(rootOpts *RootOptions) *cobra.Command {
	var grid bool

	cmd := &cobra.Command{
		Use:   "density <dataset>",
		Short: "Kernel density quantiles of the ages in the values section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if grid {
				return runDensityGrid(rootOpts, args[0], cmd)
			}
			return runDensityQuantiles(rootOpts, args[0], cmd)
		},
	}
	cmd.Flags().BoolVar(&grid, "grid", false, "print the density on its grid instead of quantiles")

	return cmd
}

func runDensityQuantiles(opts *RootOptions, path string, cmd *cobra.Command) error {
	ages, err := loadValues(path)
	if err != nil {
		return err
	}

	quantiles := opts.Config.Density.Quantiles
	if len(quantiles) == 0 {
		quantiles = kde.DefaultQuantiles
	}
	density := opts.Config.Density
	res, err := kde.CalculateAgeQuantiles(cmd.Context(), ages, density.BandwidthAdjust, density.Cut, quantiles)
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		return writeJSON(cmd, res)
	}
	t := newTable(cmd.OutOrStdout(), "quantile", "age")
	for _, q := range quantiles {
		if v, ok := res.Get(q); ok {
			t.row(q, formatFloat(v.Age))
		}
	}
	return t.flush()
}

func runDensityGrid(opts *RootOptions, path string, cmd *cobra.Command) error {
	ages, err := loadValues(path)
	if err != nil {
		return err
	}

	k, err := kde.NewAgeDensity(ages, opts.Config.Density.BandwidthAdjust, opts.Config.Density.Cut, nil)
	if err != nil {
		return err
	}
	dens, _ := k.Density()

	if opts.Format == "json" {
		return writeJSON(cmd, dens)
	}
	t := newTable(cmd.OutOrStdout(), "age", "density")
	for _, d := range dens {
		t.row(formatFloat(d.Age), d.Value)
	}
	return t.flush()
}
