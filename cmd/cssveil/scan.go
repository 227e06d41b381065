package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/cssveil"
	"github.com/yacobolo/cssveil/internal/report"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Dry run: show the selector mapping without writing files",
	Long: `Scan the source tree and print the mapping a full run would apply.
Nothing is written, so this is the safe way to review what would be renamed
and to catch hash collisions before committing to a rewrite.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := buildEngineConfig()
		if err != nil {
			return err
		}

		quiet := getBoolWithFallback("quiet", "quiet", false)
		verbose := getBoolWithFallback("verbose", "verbose", false)
		logger := setupLogger(verbose, quiet)

		engine, err := cssveil.New(cfg, logger)
		if err != nil {
			return err
		}

		provider, err := cssveil.NewDirProvider(buildProviderOptions())
		if err != nil {
			return err
		}

		mapping, err := engine.Discover(cmd.Context(), provider)
		if err != nil {
			return err
		}

		if !quiet {
			r := report.New(os.Stdout, getBoolWithFallback("color", "color", false))
			r.PrintMapping(mapping)
		}
		return nil
	},
}

func init() {
	f := scanCmd.Flags()
	f.String("source", ".", "Source tree root")
	f.StringSlice("include", nil, "Glob patterns limiting which target files are processed")
	f.StringSlice("exclude-dirs", nil, "Directory names to skip entirely")
	f.String("prefix", "v", "Replacement name prefix (must start with a letter)")
	f.Int("width", 8, "Truncated hash width in hex characters")
	f.Bool("scan-css", true, "Discover bare selectors in CSS files")
	f.Bool("scan-js", true, "Discover selector literals in JS files")
	f.Int("min-length", 3, "Minimum length for CSS/JS bare-selector discovery")
	f.StringSlice("whitelist", nil, "Identifiers never renamed (replaces the default set)")
}
