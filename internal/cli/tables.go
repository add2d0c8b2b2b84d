package cli

import (
	"github.com/spf13/cobra"
)

// NewTablesCommand creates the tables command.
func NewTablesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List loaded tables and point kinds",
		Long: `List every table of the property database with its row count,
and the point kinds discovered from table shape.

JSON output also carries the snapshot version.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTables(rootOpts, cmd)
		},
	}

	return cmd
}

func runTables(opts *RootOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cat, err := opts.openCatalog(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}

	snap := cat.Snapshot()
	result := TablesResult{
		Version:    snap.Version(),
		Tables:     []TableView{},
		PointKinds: cat.PointKinds(),
	}
	for _, name := range snap.Tables() {
		result.Tables = append(result.Tables, TableView{Name: name, Rows: snap.RowCount(name)})
	}
	return formatter.Success(result)
}
