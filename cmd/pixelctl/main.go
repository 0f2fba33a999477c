// Pixelctl is a command-line driver for iPIXEL Color LED matrix panels.
//
// It talks to panels through a network bridge: discover panels with
// mDNS, query their geometry, switch power, render text to the panel's
// pixel grid, and select built-in display modes.
//
// Usage:
//
//	pixelctl [command] [flags]
//
// Running without arguments launches the interactive device picker.
// See 'pixelctl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ipxl/pixelctl/internal/logging"
	"github.com/ipxl/pixelctl/internal/version"
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pixelctl",
	Short: "iPIXEL Color LED Matrix Utility",
	Long: `A command-line driver for iPIXEL Color LED matrix panels.

Provides device discovery, text display with automatic font sizing,
power control, and built-in display mode selection. Panels are reached
through a network bridge.

If no command is specified, the interactive device picker will launch
automatically.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the picker when no subcommand provided
		return runPick(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pixelctl %s (commit: %s)\n", version.Version, version.Commit)
	},
}
