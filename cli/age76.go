package cli

import (
	"github.com/spf13/cobra"
	"github.com/uyouii/geochron/utils"
	"go.uber.org/zap"
)

type age76Result struct {
	Index int     `json:"index"`
	Age   float64 `json:"age"`
}

// NewAge76Command creates the age76 command.
func NewAge76Command(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "age76 <dataset>",
		Short: "207Pb/206Pb ages of the Pb-Pb analyses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAge76(rootOpts, args[0], cmd)
		},
	}
}

func runAge76(opts *RootOptions, path string, cmd *cobra.Command) error {
	analyses, err := loadPbPb(path)
	if err != nil {
		return err
	}
	c, err := opts.Config.Constants()
	if err != nil {
		return err
	}

	logger := utils.GetLogger(cmd.Context())
	bracket := opts.Config.Age76
	res := []age76Result{}
	for i, a := range analyses {
		t, err := c.Age76(a, bracket.Min, bracket.Max)
		if err != nil {
			logger.Warn("age76 failed, skip analysis", zap.Int("index", i), zap.Error(err))
			continue
		}
		res = append(res, age76Result{Index: i, Age: t})
	}

	if opts.Format == "json" {
		return writeJSON(cmd, res)
	}
	t := newTable(cmd.OutOrStdout(), "index", "age76")
	for _, r := range res {
		t.row(r.Index, formatFloat(r.Age))
	}
	return t.flush()
}
