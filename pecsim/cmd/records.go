package cmd

import (
	"fmt"
	"slices"

	"github.com/sarchlab/pnvpec/datarecording"
	"github.com/sarchlab/pnvpec/tracing"
	"github.com/spf13/cobra"
)

func newRecordsCmd() *cobra.Command {
	recordsCmd := &cobra.Command{
		Use:   "records FILE",
		Short: "List the guest errors or accesses of a recording.",
		Long: "`records FILE` prints the guest errors stored by a run with " +
			"--record. `--accesses` prints the XSCOM accesses instead.",
		Args: cobra.ExactArgs(1),
		RunE: runRecords,
	}

	flags := recordsCmd.Flags()
	flags.Bool("accesses", false, "List XSCOM accesses")
	flags.Int("chip", -1, "Only list guest errors of this chip")
	flags.Int("limit", 0, "List at most this many records, 0 lists all")

	return recordsCmd
}

func runRecords(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	accesses, _ := flags.GetBool("accesses")
	chipID, _ := flags.GetInt("chip")
	limit, _ := flags.GetInt("limit")

	reader, err := datarecording.NewReader(args[0])
	if err != nil {
		return err
	}
	defer reader.Close()

	tables, err := reader.Tables(cmd.Context())
	if err != nil {
		return err
	}

	table := tracing.GuestErrorTable
	if accesses {
		table = tracing.AccessTable
	}

	if !slices.Contains(tables, table) {
		return fmt.Errorf("%s has no %s table", args[0], table)
	}

	tracing.MapTables(reader)

	params := datarecording.QueryParams{OrderBy: "rowid", Limit: limit}

	var (
		lines []fmt.Stringer
		total int
	)

	if accesses {
		records, n, err := tracing.ReadAccesses(cmd.Context(), reader, params)
		if err != nil {
			return err
		}

		total = n
		for _, r := range records {
			lines = append(lines, r)
		}
	} else {
		if chipID >= 0 {
			params.Where = "ChipID = ?"
			params.Args = []any{chipID}
		}

		records, n, err := tracing.ReadGuestErrors(cmd.Context(), reader, params)
		if err != nil {
			return err
		}

		total = n
		for _, r := range records {
			lines = append(lines, r)
		}
	}

	for _, l := range lines {
		fmt.Fprintln(cmd.OutOrStdout(), l)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d %s records\n",
		len(lines), total, table)

	return nil
}
