package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/balkashynov/tock/internal/db"
	"github.com/balkashynov/tock/internal/models"
	"github.com/balkashynov/tock/internal/parser"
	"github.com/balkashynov/tock/internal/tui"
)

var stopwatchCmd = &cobra.Command{
	Use:     "sw",
	Aliases: []string{"stopwatch"},
	Short:   "Manage stopwatches",
}

var swNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a stopwatch",
	Long: `Create a stopwatch. It starts right away unless --start=false is given.

Examples:
  tock sw new                 # "Stopwatch <millis>", running
  tock sw new Morning run     # named, running
  tock sw new Plank --start=false`,
	RunE: withDB(false, func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		start, _ := cmd.Flags().GetBool("start")

		sw, err := store.CreateStopwatch(context.Background(), db.CreateStopwatchRequest{
			Name:  strings.Join(args, " "),
			Start: start,
		}, now())
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}

		if sw.IsRunning() {
			fmt.Fprintf(out, "▶️  Started stopwatch #%d: %s\n", sw.ID, sw.Name)
		} else {
			fmt.Fprintf(out, "✅ Created stopwatch #%d: %s\n", sw.ID, sw.Name)
		}
	}),
}

var swListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List stopwatches",
	RunE: withDB(false, func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()

		stopwatches, err := store.Stopwatches.GetAll(context.Background())
		if err != nil {
			fmt.Fprintf(out, "Error fetching stopwatches: %v\n", err)
			return
		}

		if len(stopwatches) == 0 {
			fmt.Fprintln(out, "No stopwatches found. Use 'tock sw new' to create one.")
			return
		}

		t := now()
		fmt.Fprintf(out, "%-4s %-8s %-10s %s\n", "ID", "STATE", "ELAPSED", "NAME")
		fmt.Fprintln(out, strings.Repeat("-", 60))
		for _, sw := range stopwatches {
			fmt.Fprintf(out, "%-4d %-8s %-10s %s\n",
				sw.ID,
				stopwatchState(sw),
				parser.FormatClock(sw.Elapsed(t)),
				truncate(sw.Name, 40))
		}
	}),
}

var swToggleCmd = &cobra.Command{
	Use:     "toggle [stopwatch-id]",
	Aliases: []string{"t"},
	Short:   "Start or pause a stopwatch",
	Args:    cobra.ExactArgs(1),
	RunE: withDB(false, func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		id, err := parseID("stopwatch", args[0])
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}

		t := now()
		sw, err := store.ToggleStopwatch(context.Background(), id, t)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}

		if sw.IsRunning() {
			fmt.Fprintf(out, "▶️  Resumed stopwatch #%d: %s (%s)\n", sw.ID, sw.Name, parser.FormatClock(sw.Elapsed(t)))
		} else {
			fmt.Fprintf(out, "⏸️  Paused stopwatch #%d: %s at %s\n", sw.ID, sw.Name, parser.FormatClock(sw.Elapsed(t)))
		}
	}),
}

var swResetCmd = &cobra.Command{
	Use:   "reset [stopwatch-id]",
	Short: "Reset a stopwatch to zero and pause it",
	Args:  cobra.ExactArgs(1),
	RunE: withDB(false, func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		id, err := parseID("stopwatch", args[0])
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}

		sw, err := store.ResetStopwatch(context.Background(), id, now())
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}
		fmt.Fprintf(out, "🔄 Reset stopwatch #%d: %s\n", sw.ID, sw.Name)
	}),
}

var swRenameCmd = &cobra.Command{
	Use:   "rename [stopwatch-id] [name]",
	Short: "Rename a stopwatch",
	Args:  cobra.MinimumNArgs(2),
	RunE: withDB(false, func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		id, err := parseID("stopwatch", args[0])
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}

		sw, err := store.RenameStopwatch(context.Background(), db.RenameRequest{ID: id, Name: strings.Join(args[1:], " ")})
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}
		fmt.Fprintf(out, "✏️  Renamed stopwatch #%d to %q\n", sw.ID, sw.Name)
	}),
}

var swRemoveCmd = &cobra.Command{
	Use:     "rm [stopwatch-id...]",
	Aliases: []string{"delete"},
	Short:   "Delete one or more stopwatches",
	Args:    cobra.MinimumNArgs(1),
	RunE: withDB(false, func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		ids, err := parseIDs("stopwatch", args)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}

		if err := store.DeleteStopwatches(context.Background(), ids...); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}
		fmt.Fprintf(out, "🗑️  Deleted %d stopwatch(es)\n", len(ids))
	}),
}

var swShowCmd = &cobra.Command{
	Use:   "show [stopwatch-id]",
	Short: "Show one stopwatch full screen",
	Long: `Show one stopwatch with a large live clock. Use --no-ui for a one-line summary.

Examples:
  tock sw show 3
  tock sw show 3 --no-ui`,
	Args: cobra.ExactArgs(1),
	RunE: withDB(true, func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		id, err := parseID("stopwatch", args[0])
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}

		noUI, _ := cmd.Flags().GetBool("no-ui")
		if !noUI {
			if err := tui.RunDetail(tuiDeps(), tui.KindStopwatch, id); err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
			}
			return
		}

		sw, err := store.Stopwatches.GetByID(context.Background(), id)
		if err != nil {
			fmt.Fprintf(out, "Error: stopwatch #%d: %v\n", id, err)
			return
		}

		t := now()
		fmt.Fprintf(out, "⏱️  Stopwatch #%d: %s\n", sw.ID, sw.Name)
		fmt.Fprintf(out, "State: %s\n", stopwatchState(*sw))
		fmt.Fprintf(out, "Elapsed: %s\n", parser.FormatClock(sw.Elapsed(t)))
		fmt.Fprintf(out, "Started at: %s\n", sw.StartTime.Local().Format("2006-01-02 15:04:05"))
	}),
}

func stopwatchState(sw models.Stopwatch) string {
	if sw.IsRunning() {
		return "running"
	}
	return "paused"
}

// truncate shortens s to n terminal cells
func truncate(s string, n int) string {
	return ansi.Truncate(s, n, "...")
}

func init() {
	swNewCmd.Flags().Bool("start", true, "Start the stopwatch right away")
	swShowCmd.Flags().Bool("no-ui", false, "Print a summary instead of opening the live view")

	stopwatchCmd.AddCommand(swNewCmd)
	stopwatchCmd.AddCommand(swListCmd)
	stopwatchCmd.AddCommand(swToggleCmd)
	stopwatchCmd.AddCommand(swResetCmd)
	stopwatchCmd.AddCommand(swRenameCmd)
	stopwatchCmd.AddCommand(swRemoveCmd)
	stopwatchCmd.AddCommand(swShowCmd)
}
