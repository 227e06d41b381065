package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .cssveil.yaml config file",
	Long:  `Create a .cssveil.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".cssveil.yaml"); err == nil && !force {
			return fmt.Errorf(".cssveil.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".cssveil.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Println("Created .cssveil.yaml")
		return nil
	},
}

const defaultConfig = `# cssveil configuration
# Docs: https://github.com/yacobolo/cssveil

# Naming
prefix: v                # replacement-name prefix, must start with a letter
width: 8                 # truncated hash width in hex characters

# Engine
mode: context            # context | naive
jobs: 0                  # parallel workers per phase, 0 = all CPUs

# Discovery
scan:
  css: true              # find bare .name/#name selectors in CSS
  js: true               # find '.name'/'#name' string literals in JS
  min-length: 3          # minimum token length for bare-selector discovery

# Tree handling
run:
  source: .
  output: encrypted
  copy-assets: true
  include: []            # optional glob patterns, e.g. "assets/**/*.css"
  exclude-dirs:
    - .git
    - node_modules
    - dist
    - .vscode
    - __pycache__

# Identifiers never renamed. Leave empty to use the built-in defaults
# (tag names, global attributes, common state classes).
whitelist: []
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
