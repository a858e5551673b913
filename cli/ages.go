package cli

import (
	"github.com/spf13/cobra"
	"github.com/uyouii/geochron/age"
)

// NewAgesCommand creates the ages command.
func NewAgesCommand(rootOpts *RootOptions) *cobra.Command {
	var concordant bool

	cmd := &cobra.Command{
		Use:   "ages <dataset>",
		Short: "207Pb/235U and 206Pb/238U ages and discordance of each U-Pb analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAges(rootOpts, args[0], concordant, cmd)
		},
	}
	cmd.Flags().BoolVar(&concordant, "concordant", false, "keep analyses within max_discordance percent")

	return cmd
}

func runAges(opts *RootOptions, path string, concordant bool, cmd *cobra.Command) error {
	analyses, err := loadUPb(path)
	if err != nil {
		return err
	}
	c, err := opts.Config.Constants()
	if err != nil {
		return err
	}

	ages := age.CalculateSampleAges(cmd.Context(), analyses, c)
	if concordant {
		ages = age.FilterConcordant(ages, opts.Config.MaxDiscordance)
	}

	if opts.Format == "json" {
		return writeJSON(cmd, ages)
	}
	t := newTable(cmd.OutOrStdout(), "index", "age75", "age68", "discordance%")
	for _, a := range ages {
		t.row(a.Index, formatValue(a.Age75.Mean, a.Age75.Sigma), formatValue(a.Age68.Mean, a.Age68.Sigma),
			formatFloat(a.Discordance))
	}
	return t.flush()
}
