package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/balkashynov/tock/internal/parser"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show running stopwatches and timers",
	RunE: withDB(false, func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		ctx := context.Background()

		stopwatches, err := store.Stopwatches.GetAll(ctx)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}
		timers, err := store.Timers.GetAll(ctx)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}

		at := now()
		running := 0

		for _, sw := range stopwatches {
			if !sw.IsRunning() {
				continue
			}
			running++
			fmt.Fprintf(out, "⏱️  Stopwatch #%d: %s\n", sw.ID, sw.Name)
			fmt.Fprintf(out, "   %s elapsed, started %s\n",
				parser.FormatClock(sw.Elapsed(at)),
				humanize.RelTime(sw.StartTime, at, "ago", "from now"))
		}

		for _, t := range timers {
			if !t.IsRunning || t.StartTime == nil {
				continue
			}
			running++
			fmt.Fprintf(out, "⏲️  Timer #%d: %s\n", t.ID, t.Name)

			// The countdown hits zero at StartTime + remaining
			endsAt := t.StartTime.Add(time.Duration(t.RemainingTimeMillis) * time.Millisecond)
			if t.Expired(at) {
				fmt.Fprintf(out, "   expired %s (%s)\n",
					humanize.RelTime(endsAt, at, "ago", "from now"),
					parser.FormatClock(t.RemainingAt(at)))
			} else {
				fmt.Fprintf(out, "   %s left, ends %s\n",
					parser.FormatClock(t.RemainingAt(at)),
					humanize.RelTime(endsAt, at, "ago", "from now"))
			}
		}

		if running == 0 {
			fmt.Fprintln(out, "Nothing is running")
		}
	}),
}
