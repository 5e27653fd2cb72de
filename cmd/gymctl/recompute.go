package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/2beens/gymlog/internal/gymstats/durations"
)

var recomputeScheduled bool

var recomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Rederive and clean rest durations",
	Long: `Rederive raw rest durations from set timestamps and replace outliers
with the median of their exercise group.

By default every workout of every user is recomputed with uncapped fences.
With --scheduled only stale workouts are handled, in one batch, with the
fences clamped to 10..600 seconds, exactly like the background job.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		anomaly := durations.AnomalyPolicy(cfg.DurationsAnomalyPolicy)
		policy := durations.GeneralPolicy(anomaly)
		if recomputeScheduled {
			policy = durations.ScheduledPolicy(anomaly, cfg.DurationsRecomputeBatch)
		}
		policy.Trigger = "cli"

		recomputer := durations.NewRecomputer(durations.NewRepo(dbPool), nil)
		result, err := recomputer.Recompute(cmd.Context(), policy)
		if err != nil {
			return fmt.Errorf("recompute: %w", err)
		}
		printRecomputeResult(cmd.OutOrStdout(), result)
		return nil
	},
}

func printRecomputeResult(w io.Writer, result durations.Result) {
	fmt.Fprintf(w, "workouts processed: %d\n", result.WorkoutsProcessed)
	if result.WorkoutsFailed > 0 {
		fmt.Fprintln(w, color.RedString("workouts failed:    %d", result.WorkoutsFailed))
	}
	fmt.Fprintf(w, "sets updated:       %d\n", result.SetsUpdated)
	fmt.Fprintf(w, "outliers found:     %d\n", result.OutliersFound)
	if result.SetsFlagged > 0 {
		fmt.Fprintln(w, color.YellowString("sets flagged:       %d", result.SetsFlagged))
	}
	fmt.Fprintf(w, "took:               %s\n", result.Elapsed.Round(time.Millisecond))
}

func init() {
	recomputeCmd.Flags().BoolVar(&recomputeScheduled, "scheduled", false, "only recompute stale workouts with the scheduled policy")
	rootCmd.AddCommand(recomputeCmd)
}
