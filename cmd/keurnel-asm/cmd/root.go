// Package cmd implements the CLI front door, adapted directly from the
// teacher's own cmd/cli/cmd package: a cobra root command with an "arch"
// command group and one sub-tree per architecture, now wired to the
// rebuilt encoder rather than the original v0 pipeline.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "keurnel-asm",
	Short: "Keurnel's x86/AMD64 instruction encoder",
	Long:  `keurnel-asm assembles a small, explicit instruction-list format into raw machine code.`,
}

// Execute runs the root command, exiting non-zero on any returned error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddGroup(&cobra.Group{
		ID:    "arch",
		Title: "Architectures",
	})

	rootCmd.AddCommand(x8664Cmd)
}
