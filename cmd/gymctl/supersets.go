package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/2beens/gymlog/internal/gymstats/legacy"
)

var (
	supersetsMappingPath string
	supersetsOwnerID     int
	supersetsExecute     bool
)

var migrateSupersetsCmd = &cobra.Command{
	Use:   "migrate-supersets",
	Short: "Split combined superset exercises into linked sets",
	Long: `Old workouts logged a superset as one combined exercise, e.g.
"Bizeps/Trizeps". This command replaces every set of such an exercise with
one set per target exercise, linked into a superset, then deletes the
combined exercise.

The mapping is a TOML file:

  [[superset]]
  source = "Bizeps/Trizeps"
  targets = ["Bizepscurl", "Trizepsdrücken"]

  [superset.weight_adjust]
  "Trizepsdrücken" = 0.85

Without --execute only the plan is printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateOwner(supersetsOwnerID); err != nil {
			return err
		}

		mapping, err := legacy.LoadMapping(supersetsMappingPath)
		if err != nil {
			return err
		}

		migrator := legacy.NewSupersetMigrator(dbPool)
		if !supersetsExecute {
			color.Yellow("Dry run mode - no changes will be made")
			plan, err := migrator.DryRun(cmd.Context(), mapping, supersetsOwnerID)
			if err != nil {
				return fmt.Errorf("plan superset migration: %w", err)
			}
			printPlan(cmd.OutOrStdout(), plan)
			return nil
		}

		result, err := migrator.Execute(cmd.Context(), mapping, supersetsOwnerID)
		if err != nil {
			return fmt.Errorf("migrate supersets: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ superset migration done"))
		fmt.Fprintf(cmd.OutOrStdout(), "supersets: %d\n", result.SupersetsProcessed)
		fmt.Fprintf(cmd.OutOrStdout(), "sets:      +%d / -%d\n", result.SetsCreated, result.SetsDeleted)
		fmt.Fprintf(cmd.OutOrStdout(), "exercises: +%d / -%d\n", result.ExercisesCreated, result.ExercisesDeleted)
		return nil
	},
}

func printPlan(w io.Writer, plan *legacy.Plan) {
	for _, item := range plan.Items {
		if !item.Found {
			fmt.Fprintln(w, color.YellowString("%s: not found, skipped", item.Source))
			continue
		}
		fmt.Fprintf(w, "%s: %d sets\n", item.Source, len(item.Sets))
		for _, target := range item.Targets {
			if target.Create {
				fmt.Fprintf(w, "  -> %s (new)\n", target.Name)
			} else {
				fmt.Fprintf(w, "  -> %s (#%d)\n", target.Name, target.ExerciseID)
			}
		}
		for _, ps := range item.Sets {
			fmt.Fprintf(w, "  %s set %d, %d reps:", ps.Date, ps.SetNumber, ps.Reps)
			for _, c := range ps.Copies {
				fmt.Fprintf(w, " %s %.1fkg", c.Exercise, c.Weight)
			}
			fmt.Fprintln(w)
		}
	}
}

func init() {
	migrateSupersetsCmd.Flags().StringVar(&supersetsMappingPath, "mapping", "", "path of the TOML superset mapping")
	migrateSupersetsCmd.Flags().IntVar(&supersetsOwnerID, "owner", 0, "user id whose exercises are migrated")
	migrateSupersetsCmd.Flags().BoolVar(&supersetsExecute, "execute", false, "apply the migration instead of printing the plan")
	_ = migrateSupersetsCmd.MarkFlagRequired("mapping")
	_ = migrateSupersetsCmd.MarkFlagRequired("owner")
	rootCmd.AddCommand(migrateSupersetsCmd)
}
