package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/2beens/gymlog/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.Migrate(poolParams().ConnString()); err != nil {
			return err
		}
		color.Green("✓ schema up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
