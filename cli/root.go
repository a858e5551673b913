package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"github.com/uyouii/geochron/config"
	"github.com/uyouii/geochron/utils"
)

// RootOptions holds global flags and the configuration loaded from them.
type RootOptions struct {
	ConfigPath string
	Verbose    bool
	Format     string // "json" | "text"

	Config *config.Config
}

var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the geochron command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "geochron",
		Short: "U-Pb and Pb-Pb radiometric ages",
		Long: `Compute radiometric ages with first-order uncertainty propagation.

Datasets are YAML files with upb, pbpb and values sections; see config.Dataset.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file path (yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewAgesCommand(opts))
	cmd.AddCommand(NewWMeanCommand(opts))
	cmd.AddCommand(NewYorkCommand(opts))
	cmd.AddCommand(NewAge76Command(opts))
	cmd.AddCommand(NewStaceyKramersCommand(opts))
	cmd.AddCommand(NewDensityCommand(opts))

	return cmd
}

func (opts *RootOptions) setup() error {
	if !slices.Contains(ValidFormats, opts.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
	}

	cfg := config.DefaultConfig()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	opts.Config = cfg

	logLevel := cfg.LogLevel
	if opts.Verbose {
		logLevel = "debug"
	}
	return utils.SetLevel(logLevel)
}
