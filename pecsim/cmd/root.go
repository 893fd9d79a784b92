// Package cmd provides the command-line interface of pecsim.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// Execute runs the root command and exits through atexit on failure so that
// recorders are flushed.
func Execute() {
	loadEnv(".env")

	err := newRootCmd().Execute()
	if err != nil {
		atexit.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pecsim",
		Short: "pecsim models the PCI Express controllers of PowerNV chips.",
		Long: `pecsim builds a POWER9 or POWER10 machine, realizes the PCI ` +
			`Express controllers (PECs) of each chip, and lets you inspect ` +
			`the resulting device tree and XSCOM registers.`,
		SilenceUsage: true,
	}

	addMachineFlags(rootCmd)

	rootCmd.AddCommand(newDTSCmd())
	rootCmd.AddCommand(newXSCOMCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newRecordsCmd())

	return rootCmd
}

func warn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}
