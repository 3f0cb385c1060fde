package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tock/internal/db"
	"github.com/balkashynov/tock/internal/models"
	"github.com/balkashynov/tock/internal/parser"
	"github.com/balkashynov/tock/internal/tracking"
	"github.com/balkashynov/tock/internal/tui"
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Manage countdown timers",
}

var timerNewCmd = &cobra.Command{
	Use:   "new [duration] [name]",
	Short: "Create a countdown timer",
	Long: `Create a countdown timer. It starts right away unless --start=false is given.

Durations: 05:00, 1:30:00, 90s, 25m, 1h30m, "25 min", or a bare number of minutes.

Examples:
  tock timer new 25m Pomodoro
  tock timer new 3:00 Tea
  tock timer new 10 --start=false`,
	Args: cobra.MinimumNArgs(1),
	RunE: withDB(false, func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		start, _ := cmd.Flags().GetBool("start")

		d, err := parser.ParseDuration(args[0])
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}

		t, err := store.CreateTimer(context.Background(), db.CreateTimerRequest{
			Name:     strings.Join(args[1:], " "),
			Duration: d,
			Start:    start,
		}, now())
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}

		if t.IsRunning {
			fmt.Fprintf(out, "▶️  Started timer #%d: %s (%s)\n", t.ID, t.Name, parser.FormatClock(t.InitialDuration()))
		} else {
			fmt.Fprintf(out, "✅ Created timer #%d: %s (%s)\n", t.ID, t.Name, parser.FormatClock(t.InitialDuration()))
		}
	}),
}

var timerListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List timers",
	RunE: withDB(false, func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()

		timers, err := store.Timers.GetAll(context.Background())
		if err != nil {
			fmt.Fprintf(out, "Error fetching timers: %v\n", err)
			return
		}

		if len(timers) == 0 {
			fmt.Fprintln(out, "No timers found. Use 'tock timer new <duration>' to create one.")
			return
		}

		at := now()
		fmt.Fprintf(out, "%-4s %-8s %-10s %-10s %s\n", "ID", "STATE", "REMAINING", "SET FOR", "NAME")
		fmt.Fprintln(out, strings.Repeat("-", 70))
		for _, t := range timers {
			fmt.Fprintf(out, "%-4d %-8s %-10s %-10s %s\n",
				t.ID,
				timerState(t, at),
				parser.FormatClock(t.RemainingAt(at)),
				parser.FormatShort(t.InitialDuration()),
				truncate(t.Name, 40))
		}
	}),
}

var timerToggleCmd = &cobra.Command{
	Use:     "toggle [timer-id]",
	Aliases: []string{"t"},
	Short:   "Start or pause a timer",
	Args:    cobra.ExactArgs(1),
	RunE: withDB(false, func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		id, err := parseID("timer", args[0])
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}

		at := now()
		t, err := store.ToggleTimer(context.Background(), id, at)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}

		if t.IsRunning {
			fmt.Fprintf(out, "▶️  Started timer #%d: %s (%s left)\n", t.ID, t.Name, parser.FormatClock(t.RemainingAt(at)))
		} else {
			fmt.Fprintf(out, "⏸️  Paused timer #%d: %s with %s left\n", t.ID, t.Name, parser.FormatClock(t.RemainingAt(at)))
		}
	}),
}

var timerResetCmd = &cobra.Command{
	Use:   "reset [timer-id]",
	Short: "Reset a timer to its full duration and stop it",
	Args:  cobra.ExactArgs(1),
	RunE: withDB(false, func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		id, err := parseID("timer", args[0])
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}

		t, err := store.ResetTimer(context.Background(), id)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}
		fmt.Fprintf(out, "🔄 Reset timer #%d: %s (%s)\n", t.ID, t.Name, parser.FormatMillis(t.InitialDurationMillis))
	}),
}

var timerRenameCmd = &cobra.Command{
	Use:   "rename [timer-id] [name]",
	Short: "Rename a timer",
	Args:  cobra.MinimumNArgs(2),
	RunE: withDB(false, func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		id, err := parseID("timer", args[0])
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}

		t, err := store.RenameTimer(context.Background(), db.RenameRequest{ID: id, Name: strings.Join(args[1:], " ")})
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}
		fmt.Fprintf(out, "✏️  Renamed timer #%d to %q\n", t.ID, t.Name)
	}),
}

var timerRemoveCmd = &cobra.Command{
	Use:     "rm [timer-id...]",
	Aliases: []string{"delete"},
	Short:   "Delete one or more timers",
	Args:    cobra.MinimumNArgs(1),
	RunE: withDB(false, func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		ids, err := parseIDs("timer", args)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}

		if err := store.DeleteTimers(context.Background(), ids...); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}
		fmt.Fprintf(out, "🗑️  Deleted %d timer(s)\n", len(ids))
	}),
}

var timerShowCmd = &cobra.Command{
	Use:   "show [timer-id]",
	Short: "Show one timer full screen",
	Args:  cobra.ExactArgs(1),
	RunE: withDB(true, func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		id, err := parseID("timer", args[0])
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}

		noUI, _ := cmd.Flags().GetBool("no-ui")
		if !noUI {
			if err := tui.RunDetail(tuiDeps(), tui.KindTimer, id); err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
			}
			return
		}

		t, err := store.Timers.GetByID(context.Background(), id)
		if err != nil {
			fmt.Fprintf(out, "Error: timer #%d: %v\n", id, err)
			return
		}

		at := now()
		fmt.Fprintf(out, "⏲️  Timer #%d: %s\n", t.ID, t.Name)
		fmt.Fprintf(out, "State: %s\n", timerState(*t, at))
		fmt.Fprintf(out, "Remaining: %s of %s (%.0f%%)\n",
			parser.FormatClock(t.RemainingAt(at)),
			parser.FormatClock(t.InitialDuration()),
			t.Progress(at)*100)
		if !tracking.Resettable(*t) {
			fmt.Fprintln(out, "Nothing to reset")
		}
	}),
}

func timerState(t models.Timer, at time.Time) string {
	switch {
	case t.Expired(at):
		return "expired"
	case t.IsRunning:
		return "running"
	default:
		return "paused"
	}
}

func init() {
	timerNewCmd.Flags().Bool("start", true, "Start the timer right away")
	timerShowCmd.Flags().Bool("no-ui", false, "Print a summary instead of opening the live view")

	timerCmd.AddCommand(timerNewCmd)
	timerCmd.AddCommand(timerListCmd)
	timerCmd.AddCommand(timerToggleCmd)
	timerCmd.AddCommand(timerResetCmd)
	timerCmd.AddCommand(timerRenameCmd)
	timerCmd.AddCommand(timerRemoveCmd)
	timerCmd.AddCommand(timerShowCmd)
}
