package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trade-journal/internal/ingest"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import a journal CSV export",
	Long: `Import trades from a CSV export. Rows that already exist are skipped,
so the same file can be imported repeatedly.

Examples:
  go run ./cmd/journal import exports/january.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	st, err := openStores(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	res, err := ingest.NewImporter(st.Trades, log).ImportCSV(ctx, f)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "read %d, imported %d, skipped %d, rejected %d\n",
		res.Read, res.Imported, res.Skipped, len(res.Rejections))
	for _, w := range res.Warnings {
		fmt.Fprintf(out, "  warning: %s\n", w)
	}
	for _, r := range res.Rejections {
		fmt.Fprintf(out, "  rejected row %d: %v\n", r.Row, r.Err)
	}
	return nil
}
