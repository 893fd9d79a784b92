package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newDTSCmd() *cobra.Command {
	dtsCmd := &cobra.Command{
		Use:   "dts",
		Short: "Print the device tree of the machine.",
		Long: "`dts` prints the device tree as source. `dts --dtb FILE` " +
			"also writes it as a flattened blob.",
		Args: cobra.NoArgs,
		RunE: runDTS,
	}

	dtsCmd.Flags().String("dtb", "", "Write the flattened device tree to a file")

	return dtsCmd
}

func runDTS(cmd *cobra.Command, _ []string) error {
	m, err := buildMachine(cmd, nil)
	if err != nil {
		return err
	}
	defer m.Terminate()

	if err := m.WriteDeviceTreeSource(cmd.OutOrStdout()); err != nil {
		return err
	}

	dtb, _ := cmd.Flags().GetString("dtb")
	if dtb == "" {
		return nil
	}

	blob, err := m.DeviceTreeBlob()
	if err != nil {
		return err
	}

	if err := os.WriteFile(dtb, blob, 0o644); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d bytes to %s\n", len(blob), dtb)

	return nil
}
