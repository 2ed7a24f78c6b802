package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/imgsift/imgsift/internal/config"
	"github.com/imgsift/imgsift/internal/fsops"
	"github.com/imgsift/imgsift/internal/logging"
	"github.com/imgsift/imgsift/internal/queue"
	"github.com/imgsift/imgsift/internal/tui"
)

func runSession(cmd *cobra.Command, args []string) error {
	opts, err := sessionOptions(cmd)
	if err != nil {
		return err
	}

	criterion, err := queue.ParseCriterion(opts.SortBy)
	if err != nil {
		return err
	}
	descending, err := queue.ParseOrder(opts.SortOrder)
	if err != nil {
		return err
	}
	walkOpts, err := buildWalkOptions(opts)
	if err != nil {
		return err
	}

	if err := initLogging(opts); err != nil {
		return err
	}
	defer logging.Sync()

	destination := args[0]
	sources := args[1:]
	for _, fragment := range relativeDirs {
		sources = append(sources, filepath.Join(destination, fragment))
	}

	fs := fsops.NewRealFS()
	logging.Info("session starting",
		logging.String("destination", destination),
		logging.Int("sources", len(sources)))

	summary, err := tui.Run(tui.Params{
		Queue:          queue.New(fs),
		FS:             fs,
		Destination:    destination,
		Sources:        sources,
		WalkOpts:       walkOpts,
		DeleteOriginal: opts.DeleteOriginal,
		RecycleQueue:   opts.RecycleQueue,
		Threshold:      opts.Threshold,
		Criterion:      criterion,
		Descending:     descending,
	})
	if err != nil {
		// an abandoned apply may still have committed work worth reporting
		if summary.Applied {
			printSummary(summary)
		}
		return err
	}
	printSummary(summary)
	return nil
}

// initLogging wires the zap sink. Logging is off unless asked for: the
// alternate screen owns the terminal, so output goes to a file.
func initLogging(opts config.Options) error {
	if !opts.Verbose && opts.Log == "" {
		return nil
	}
	level := "info"
	if opts.Verbose {
		level = "debug"
	}
	output := opts.Log
	if output == "" {
		paths, err := config.DefaultPaths()
		if err != nil {
			return err
		}
		if err := paths.EnsureDirectories(); err != nil {
			return err
		}
		output = filepath.Join(paths.Root, "imgsift.log")
	}
	return logging.Init(logging.Config{
		Level:      level,
		Format:     "json",
		OutputPath: output,
	})
}

func printSummary(s tui.Summary) {
	if !s.Applied {
		PrintInfo("Session ended without applying changes.")
		return
	}
	PrintSuccess(fmt.Sprintf("Sorted into place: %d moved, %d copied, %d deleted, %d replaced",
		s.Stats.Moved, s.Stats.Copied, s.Stats.Deleted, s.Stats.Cleaned))
	if s.SkippedRemaining > 0 {
		PrintInfo(PrintCount(s.SkippedRemaining, "collection was left skipped", "collections were left skipped"))
	}
}
