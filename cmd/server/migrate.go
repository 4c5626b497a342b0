package main

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := newLogger()
		defer log.Sync() //nolint:errcheck

		db, err := ConnectDB(log)
		if err != nil {
			return err
		}
		if err := migrate(db); err != nil {
			return err
		}
		log.Info("migration finished")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
