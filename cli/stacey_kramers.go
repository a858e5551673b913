package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/uyouii/geochron/age"
	"github.com/uyouii/geochron/model"
)

type curveOptions struct {
	from float64
	to   float64
	n    int
}

// NewStaceyKramersCommand creates the stacey-kramers command.
func NewStaceyKramersCommand(rootOpts *RootOptions) *cobra.Command {
	curve := curveOptions{}

	cmd := &cobra.Command{
		Use:   "stacey-kramers [age...]",
		Short: "Common-lead 206Pb/204Pb and 207Pb/204Pb of the Stacey-Kramers model",
		Long: `Print the two-stage common-lead composition at the given ages in Myr.
Without arguments the curve is sampled between --from and --to.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStaceyKramers(rootOpts, args, curve, cmd)
		},
	}
	cmd.Flags().Float64Var(&curve.from, "from", 0, "curve start age (Myr)")
	cmd.Flags().Float64Var(&curve.to, "to", age.StaceyKramersEarthAge, "curve end age (Myr)")
	cmd.Flags().IntVar(&curve.n, "n", 10, "curve points")

	return cmd
}

func runStaceyKramers(opts *RootOptions, args []string, curve curveOptions, cmd *cobra.Command) error {
	c, err := opts.Config.Constants()
	if err != nil {
		return err
	}

	var points []model.CommonLead
	if len(args) == 0 {
		points = c.StaceyKramersCurve(curve.from, curve.to, curve.n)
	}
	for _, arg := range args {
		t, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("invalid age %q: %w", arg, err)
		}
		p, ok := c.StaceyKramersPoint(t)
		if !ok {
			return fmt.Errorf("age %g is outside the Stacey-Kramers model", t)
		}
		points = append(points, p)
	}

	if opts.Format == "json" {
		return writeJSON(cmd, points)
	}
	t := newTable(cmd.OutOrStdout(), "t", "206/204", "207/204")
	for _, p := range points {
		t.row(formatFloat(p.T), formatFloat(p.R64), formatFloat(p.R74))
	}
	return t.flush()
}
