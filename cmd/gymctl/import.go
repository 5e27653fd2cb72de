package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/2beens/gymlog/internal/gymstats/legacy"
)

var (
	importSQLitePath string
	importOwnerID    int
)

var importLegacyCmd = &cobra.Command{
	Use:   "import-legacy",
	Short: "Import an old SQLite training database",
	Long: `Import exercises, workouts, sets and warmups from the SQLite database of
the old app into the given owner's account. Running it twice is safe: rows
that already exist are skipped. Imported workouts are marked stale so the
next recompute derives their rest durations.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		if err := validateOwner(importOwnerID); err != nil {
			return err
		}

		sqliteDB, err := legacy.OpenSQLite(importSQLitePath)
		if err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, sqliteDB.Close())
		}()

		snap, err := legacy.ReadSnapshot(cmd.Context(), sqliteDB)
		if err != nil {
			return fmt.Errorf("read legacy db: %w", err)
		}

		result, err := legacy.NewImporter(dbPool).Import(cmd.Context(), snap, importOwnerID)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}
		printImportResult(cmd.OutOrStdout(), result)
		return nil
	},
}

func printImportResult(w io.Writer, result legacy.ImportResult) {
	fmt.Fprintln(w, color.GreenString("✓ import done"))
	fmt.Fprintf(w, "exercises: %d\n", result.Exercises)
	fmt.Fprintf(w, "workouts:  %d\n", result.Workouts)
	fmt.Fprintf(w, "sets:      %d (skipped %d)\n", result.SetsImported, result.SetsSkipped)
	fmt.Fprintf(w, "warmups:   %d (skipped %d)\n", result.Warmups, result.WarmupsSkipped)
}

func init() {
	importLegacyCmd.Flags().StringVar(&importSQLitePath, "sqlite", "", "path of the legacy SQLite database")
	importLegacyCmd.Flags().IntVar(&importOwnerID, "owner", 0, "user id the data is imported for")
	_ = importLegacyCmd.MarkFlagRequired("sqlite")
	_ = importLegacyCmd.MarkFlagRequired("owner")
	rootCmd.AddCommand(importLegacyCmd)
}
