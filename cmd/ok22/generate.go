package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bozidoz/ok22/internal/model"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate random well-formed hardware addresses",
		Long: `Generate prints random candidate addresses, one per line, in canonical
colon-separated form. The output feeds directly into "ok22 scan --list -"
style pipelines or can be saved for later runs.

Examples:
  # 100 fully random addresses
  ok22 generate -n 100

  # 100 addresses within a vendor block
  ok22 generate -n 100 --prefix 00:1A:79`,
		RunE: runGenerateCmd,
	}

	cmd.Flags().IntP("count", "n", 10, "Number of addresses to generate")
	cmd.Flags().String("prefix", "", "Vendor prefix to anchor addresses to (e.g. 00:1A:79)")

	return cmd
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	count, err := cmd.Flags().GetInt("count")
	if err != nil {
		return err
	}
	if count <= 0 {
		return fmt.Errorf("invalid count %d: must be positive", count)
	}

	prefix, err := cmd.Flags().GetString("prefix")
	if err != nil {
		return err
	}

	for i := 0; i < count; i++ {
		mac, err := model.RandomMACAddress(prefix)
		if err != nil {
			return fmt.Errorf("failed to generate address: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), mac)
	}
	return nil
}
