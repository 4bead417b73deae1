package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordmath/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply Postgres schema migrations",
	Long: "Applies pending migrations to the Postgres store named by\n" +
		"WORDMATH_STORE_URL. SQLite stores are migrated when opened.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		backend, dsn, err := store.ParseURL(cfg.Store.URL)
		if err != nil {
			return err
		}
		if backend != store.BackendPostgres {
			return fmt.Errorf("migrate needs a postgres store URL, got %s backend", backend)
		}

		db := store.ConnectPostgres(dsn, cfg.Store.Key)
		defer db.Close()

		ctx := cmd.Context()
		rollback, _ := cmd.Flags().GetBool("rollback")
		if rollback {
			names, err := store.Rollback(ctx, db)
			if err != nil {
				return err
			}
			return report("Rolled back", names)
		}

		names, err := store.Migrate(ctx, db)
		if err != nil {
			return err
		}
		return report("Applied", names)
	},
}

func report(verb string, names []string) error {
	if len(names) == 0 {
		fmt.Println("Nothing to do.")
		return nil
	}
	for _, n := range names {
		fmt.Printf("%s %s\n", verb, n)
	}
	return nil
}

func init() {
	migrateCmd.Flags().Bool("rollback", false, "Roll back the last migration group instead")
}
