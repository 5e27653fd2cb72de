package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/2beens/gymlog/internal/gymstats/legacy"
)

var (
	exportOwnerID int
	exportOutPath string
)

var exportSetsCmd = &cobra.Command{
	Use:   "export-sets",
	Short: "Write an owner's sets as a parquet file",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		if err := validateOwner(exportOwnerID); err != nil {
			return err
		}

		f, err := os.Create(exportOutPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOutPath, err)
		}
		defer func() {
			err = multierr.Append(err, f.Close())
		}()

		n, err := legacy.ExportSets(cmd.Context(), dbPool, exportOwnerID, f)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ exported %d sets to %s", n, exportOutPath))
		return nil
	},
}

func init() {
	exportSetsCmd.Flags().IntVar(&exportOwnerID, "owner", 0, "user id whose sets are exported")
	exportSetsCmd.Flags().StringVarP(&exportOutPath, "out", "o", "sets.parquet", "output file")
	_ = exportSetsCmd.MarkFlagRequired("owner")
	rootCmd.AddCommand(exportSetsCmd)
}
