package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for tock",
	Long:  `Display detailed help for all tock commands and keys.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), customHelp)
	},
}

const customHelp = `
████████╗ ██████╗  ██████╗██╗  ██╗
╚══██╔══╝██╔═══██╗██╔════╝██║ ██╔╝
   ██║   ██║   ██║██║     █████╔╝
   ██║   ██║   ██║██║     ██╔═██╗
   ██║   ╚██████╔╝╚██████╗██║  ██╗
   ╚═╝    ╚═════╝  ╚═════╝╚═╝  ╚═╝

tock - stopwatches and countdown timers

COMMANDS:

  tock                    Open the interactive view

  sw new [name]           Create a stopwatch (running unless --start=false)
  sw ls                   List stopwatches
  sw toggle <id>          Start or pause
  sw reset <id>           Back to zero, paused
  sw rename <id> <name>   Rename
  sw rm <id>...           Delete one or more
  sw show <id>            Full-screen live clock
    --no-ui               Print a summary instead

  timer new <dur> [name]  Create a countdown (running unless --start=false)
    Durations: 05:00, 1:30:00, 90s, 25m, 1h30m, "25 min", 10 (minutes)
  timer ls | toggle | reset | rename | rm | show
                          Same as for stopwatches

  status                  Show everything that is running
  config init             Write the default config file
    --force               Overwrite an existing one
  config show             Print the settings in use
  version                 Print version information
  help                    Show this help

INTERACTIVE KEYS:

  tab           Switch between stopwatches and timers
  ↑/↓, k/j      Move
  space, s      Start/pause
  r             Reset
  n             New (timers ask for a duration first)
  e             Rename
  enter         Open full-screen view
  x             Select rows for deletion
  d             Delete selected rows
  esc           Leave delete mode, go back, or quit
  q             Quit

CONFIG:

  ~/.tock/config.yaml (or $TOCK_CONFIG)
    db_path, log_file, log_level, tick_interval
  TOCK_DEBUG=1 forces debug logging

`
