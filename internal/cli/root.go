package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	jsonOutput bool

	// Colors for help output sections
	sectionTitleColor = color.New(color.FgBlue, color.Bold)
)

// Session flags, bound in init. The root command is the session itself.
var (
	deleteOriginal bool
	recycleQueue   bool
	relativeDirs   []string
	threshold      int
	sortBy         string
	sortOrder      string

	recursive bool
	inclusive bool
	verbose   bool
	logFile   string
	patterns  []string
	ignore    []string
)

// rootCmd is the root command for imgsift. Running it starts an interactive
// triage session over the given sources.
var rootCmd = &cobra.Command{
	Use:     "imgsift [flags] destination [source...]",
	Version: "dev",
	Short:   "Interactive terminal tool for triaging files into folders",
	Long: `imgsift walks one or more sources, queues what it finds, and opens an
interactive session in which each queued file or folder is previewed and
either skipped, deleted, or sorted into a folder under the destination.

Nothing touches the disk while you work. Every decision is staged and can
be undone; the whole batch is committed in one pass when the queue runs
out or when you ask for it.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	RunE: runSession,
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// customHelpFunc colors the help section titles.
func customHelpFunc(cmd *cobra.Command, args []string) {
	var help strings.Builder

	if cmd.Long != "" {
		help.WriteString(cmd.Long)
		help.WriteString("\n\n")
	}

	help.WriteString(sectionTitleColor.Sprint("Usage:"))
	help.WriteString("\n")
	fmt.Fprintf(&help, "  %s\n\n", cmd.UseLine())

	hasSubcommands := false
	for _, c := range cmd.Commands() {
		if c.Hidden {
			continue
		}
		if !hasSubcommands {
			help.WriteString(sectionTitleColor.Sprint("Commands:"))
			help.WriteString("\n")
			hasSubcommands = true
		}
		fmt.Fprintf(&help, "  %-11s %s\n", c.Name(), c.Short)
	}
	if hasSubcommands {
		help.WriteString("\n")
	}

	if cmd.HasAvailableLocalFlags() || cmd.HasAvailablePersistentFlags() {
		help.WriteString(sectionTitleColor.Sprint("Flags:"))
		help.WriteString("\n")
		help.WriteString(cmd.LocalFlags().FlagUsages())
		help.WriteString(cmd.InheritedFlags().FlagUsages())
		help.WriteString("\n")
	}

	fmt.Fprintf(&help, "Use \"%s [command] --help\" for more information about a command.\n", cmd.CommandPath())

	fmt.Fprint(cmd.OutOrStdout(), help.String())
}

func init() {
	rootCmd.SetHelpFunc(customHelpFunc)

	// Flags shared with subcommands
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&recursive, "recursive", "r", false,
		"recursively descend source directories when queueing files")
	rootCmd.PersistentFlags().BoolVarP(&inclusive, "inclusive", "I", false,
		"include non-image filetypes (will not display a thumbnail)")
	rootCmd.PersistentFlags().StringArrayVarP(&patterns, "pattern", "p", nil,
		"regular expression; matching folders are treated as one item (repeatable)")
	rootCmd.PersistentFlags().StringArrayVarP(&ignore, "ignore", "i", nil,
		"regular expression; matching files and folders are ignored (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"log debug output")
	rootCmd.PersistentFlags().StringVarP(&logFile, "log", "l", "",
		"file to write debug output to")

	// Session-only flags
	rootCmd.Flags().BoolVarP(&deleteOriginal, "delete-original", "D", false,
		"when sorting files into the destination, delete originals")
	rootCmd.Flags().BoolVarP(&recycleQueue, "recycle-queue", "R", false,
		"when the end of the queue is reached, requeue any skipped items")
	rootCmd.Flags().StringArrayVarP(&relativeDirs, "relative", "P", nil,
		"queue a source given relative to the destination (repeatable)")
	rootCmd.Flags().IntVarP(&threshold, "threshold", "t", 2,
		"hide the delete confirmation after this many consecutive deletes")
	rootCmd.Flags().StringVarP(&sortBy, "sort-by", "s", "name",
		"queue sort criterion: atime, mtime, name, size, or random")
	rootCmd.Flags().StringVarP(&sortOrder, "sort-order", "o", "ascending",
		"queue sort order: ascending or descending")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(versionCmd)

	helpCmd := &cobra.Command{
		Use:   "help [command]",
		Short: "Help about any command",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Root().Help()
		},
	}
	rootCmd.SetHelpCommand(helpCmd)
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}
