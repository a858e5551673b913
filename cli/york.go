package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uyouii/geochron/model"
	"github.com/uyouii/geochron/uncertain"
	"github.com/uyouii/geochron/utils"
	"github.com/uyouii/geochron/york"
	"go.uber.org/zap"
)

type yorkResult struct {
	Fit            model.YorkFit    `json:"fit"`
	UpperIntercept *uncertain.Value `json:"upper_intercept,omitempty"`
	LowerIntercept *uncertain.Value `json:"lower_intercept,omitempty"`
}

// NewYorkCommand creates the york command.
func NewYorkCommand(rootOpts *RootOptions) *cobra.Command {
	var intercepts bool

	cmd := &cobra.Command{
		Use:   "york <dataset>",
		Short: "York regression through the U-Pb analyses on the Wetherill concordia",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runYork(rootOpts, args[0], intercepts, cmd)
		},
	}
	cmd.Flags().BoolVar(&intercepts, "intercepts", false, "add Monte Carlo concordia intercept ages")

	return cmd
}

func runYork(opts *RootOptions, path string, intercepts bool, cmd *cobra.Command) error {
	analyses, err := loadUPb(path)
	if err != nil {
		return err
	}

	fit, err := york.FitAnalyses(cmd.Context(), analyses, opts.Config.York.Iterations)
	if err != nil {
		return err
	}
	res := yorkResult{Fit: fit}

	if intercepts {
		c, err := opts.Config.Constants()
		if err != nil {
			return err
		}
		r, mc := opts.Config.Intercept.Range, opts.Config.InterceptOptions()
		logger := utils.GetLogger(cmd.Context())
		if upper, err := c.UpperIntercept(fit, r.Min, r.Max, mc); err == nil {
			res.UpperIntercept = &upper
		} else {
			logger.Warn("upper intercept failed", zap.Error(err))
		}
		if lower, err := c.LowerIntercept(fit, r.Min, r.Max, mc); err == nil {
			res.LowerIntercept = &lower
		} else {
			logger.Warn("lower intercept failed", zap.Error(err))
		}
	}

	if opts.Format == "json" {
		return writeJSON(cmd, res)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "intercept: %s\nslope: %s\nmswd: %s\nn: %d\n",
		formatValue(fit.Intercept.Mean, fit.Intercept.Sigma), formatValue(fit.Slope.Mean, fit.Slope.Sigma),
		formatFloat(fit.MSWD), fit.N)
	if res.UpperIntercept != nil {
		fmt.Fprintf(out, "upper intercept: %s\n", formatValue(res.UpperIntercept.Mean, res.UpperIntercept.Sigma))
	}
	if res.LowerIntercept != nil {
		fmt.Fprintf(out, "lower intercept: %s\n", formatValue(res.LowerIntercept.Mean, res.LowerIntercept.Sigma))
	}
	return nil
}
