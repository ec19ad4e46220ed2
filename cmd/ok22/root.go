// Package main provides the entry point for the ok22 CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for ok22.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ok22",
		Short: "Mass activation scanner for STB hardware addresses",
		Long: `ok22 enumerates candidate STB hardware addresses (MACs), queries an
activation portal for each one, and writes every confirmed entitlement
to two flat files: a detailed hits log and a bare URL list.

Scanning is concurrent with a fixed ceiling, each address gets a fixed
retry budget, and attempts can be rotated through a proxy list.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
