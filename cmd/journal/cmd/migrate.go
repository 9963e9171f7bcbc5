package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long:  `Apply the embedded PostgreSQL and ClickHouse migrations. Already applied files are skipped.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if useFixtures || cfg.Storage.UseMemory {
			return errors.New("migrate needs a database; unset USE_MEMORY and --use-fixtures")
		}
		cfg.Storage.AutoMigrate = true

		st, err := openStores(cmd.Context())
		if err != nil {
			return err
		}
		st.Close()

		fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
		return nil
	},
}
