package cmd

import (
	"fmt"
	"log"

	"github.com/sarchlab/pnvpec/machine"
	"github.com/sarchlab/pnvpec/tracing"
	"github.com/spf13/cobra"
)

func newXSCOMCmd() *cobra.Command {
	xscomCmd := &cobra.Command{
		Use:   "xscom",
		Short: "Access XSCOM registers of a chip.",
		Long: "`xscom --chip N --write ADDR=VALUE --read ADDR` performs the " +
			"writes in order, then the reads. Addresses are PCB addresses.",
		Args: cobra.NoArgs,
		RunE: runXSCOM,
	}

	flags := xscomCmd.Flags()
	flags.Uint32("chip", 0, "Chip to access")
	flags.StringSlice("read", nil, "PCB addresses to read")
	flags.StringSlice("write", nil, "ADDR=VALUE pairs to write")
	flags.Bool("trace", false, "Log every access to stderr")

	return xscomCmd
}

func runXSCOM(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	chipID, _ := flags.GetUint32("chip")
	reads, _ := flags.GetStringSlice("read")
	writes, _ := flags.GetStringSlice("write")
	trace, _ := flags.GetBool("trace")

	m, err := buildMachine(cmd, nil)
	if err != nil {
		return err
	}
	defer m.Terminate()

	c, err := m.Chip(chipID)
	if err != nil {
		return err
	}

	if trace {
		c.Bus().AcceptHook(
			tracing.NewAccessLogger(log.New(cmd.ErrOrStderr(), "", 0)))
	}

	for _, w := range writes {
		pcba, value, err := parseAssignment(w)
		if err != nil {
			return err
		}

		if err := m.WriteXSCOM(chipID, pcba, value); err != nil {
			return err
		}
	}

	return readXSCOM(cmd, m, chipID, reads)
}

func readXSCOM(
	cmd *cobra.Command,
	m *machine.Machine,
	chipID uint32,
	reads []string,
) error {
	for _, r := range reads {
		pcba, err := parsePCBA(r)
		if err != nil {
			return err
		}

		value, err := m.ReadXSCOM(chipID, pcba)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "chip %d pcba 0x%08x = 0x%016x\n",
			chipID, pcba, value)
	}

	return nil
}
