package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cssveil",
	Short: "Deterministic selector renaming for HTML/CSS/JS trees",
	Long: `cssveil discovers every class and ID selector in a source tree,
assigns each a deterministic opaque replacement, and writes a functional
clone where all references are renamed consistently.`,
	// Default behavior: run the full pipeline when no subcommand is given.
	// loadConfig must be called here because PreRunE of runCmd is not
	// triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		// runCmd never executed, so it has no context of its own.
		runCmd.SetContext(cmd.Context())
		return runRun(runCmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", ".cssveil.yaml", "Config file path")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
