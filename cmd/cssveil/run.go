package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/cssveil"
	"github.com/yacobolo/cssveil/internal/report"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Rename selectors and write the rewritten tree",
	Long: `Scan the source tree for class and ID selectors, assign each a
deterministic replacement, and write a functional clone with every
reference renamed consistently. Non-target assets are copied unchanged.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runRun,
}

func init() {
	f := runCmd.Flags()
	f.String("source", ".", "Source tree root")
	f.String("output", "encrypted", "Output directory for the rewritten tree")
	f.StringSlice("include", nil, "Glob patterns limiting which target files are processed")
	f.StringSlice("exclude-dirs", nil, "Directory names to skip entirely")
	f.Bool("copy-assets", true, "Copy non-target files into the output tree")
	f.String("prefix", "v", "Replacement name prefix (must start with a letter)")
	f.Int("width", 8, "Truncated hash width in hex characters")
	f.String("mode", "context", "Substitution mode: context|naive")
	f.Int("jobs", 0, "Parallel workers per phase (0 = all CPUs)")
	f.Bool("scan-css", true, "Discover bare selectors in CSS files")
	f.Bool("scan-js", true, "Discover selector literals in JS files")
	f.Int("min-length", 3, "Minimum length for CSS/JS bare-selector discovery")
	f.StringSlice("whitelist", nil, "Identifiers never renamed (replaces the default set)")
	f.String("output-format", "text", "Output format: text|json")
}

func runRun(cmd *cobra.Command, _ []string) error {
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

	ctx := cmd.Context()
	result, err := engine.Run(ctx, provider)
	if err != nil {
		return err
	}

	if getBoolWithFallback("copy-assets", "run.copy-assets", true) {
		copied, err := provider.CopyAssets(ctx)
		if err != nil {
			return fmt.Errorf("copying assets: %w", err)
		}
		logger.Debug().Int("copied", copied).Msg("assets copied")
	}

	if !quiet {
		format := cssveil.DetermineOutputFormat(getStringWithFallback("output-format", "run.output-format", "text"))
		switch format {
		case cssveil.OutputJSON:
			if err := cssveil.WriteJSON(os.Stdout, result); err != nil {
				return err
			}
		default:
			r := report.New(os.Stdout, getBoolWithFallback("color", "color", false))
			r.PrintIssues(result.Issues)
			r.PrintSummary(result)
		}
	}

	// Write failures mean the output tree is incomplete.
	if result.Errors() > 0 {
		os.Exit(1)
	}
	return nil
}
