package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/imgsift/imgsift/internal/config"
	"github.com/imgsift/imgsift/internal/queue"
)

// sessionOptions layers the command-line flags over the config file
// defaults. Only flags the user actually set override the file.
func sessionOptions(cmd *cobra.Command) (config.Options, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return config.Options{}, fmt.Errorf("failed to get config paths: %w", err)
	}
	opts, err := config.LoadOptions(paths.Config)
	if err != nil {
		return config.Options{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("delete-original") {
		opts.DeleteOriginal = deleteOriginal
	}
	if flags.Changed("inclusive") {
		opts.Inclusive = inclusive
	}
	if flags.Changed("verbose") {
		opts.Verbose = verbose
	}
	if flags.Changed("log") {
		opts.Log = logFile
	}
	if flags.Changed("recursive") {
		opts.Recursive = recursive
	}
	if flags.Changed("recycle-queue") {
		opts.RecycleQueue = recycleQueue
	}
	if flags.Changed("threshold") {
		opts.Threshold = threshold
	}
	if flags.Changed("sort-by") {
		opts.SortBy = sortBy
	}
	if flags.Changed("sort-order") {
		opts.SortOrder = sortOrder
	}
	if flags.Changed("pattern") {
		opts.Patterns = patterns
	}
	if flags.Changed("ignore") {
		opts.Ignore = ignore
	}
	return opts, nil
}

// buildWalkOptions compiles the queueing rules shared by the session and
// scan commands.
func buildWalkOptions(opts config.Options) (queue.WalkOptions, error) {
	collectionPatterns, err := queue.CompilePatterns(opts.Patterns)
	if err != nil {
		return queue.WalkOptions{}, err
	}
	ignorePatterns, err := queue.CompilePatterns(opts.Ignore)
	if err != nil {
		return queue.WalkOptions{}, err
	}
	return queue.WalkOptions{
		Recursive:          opts.Recursive,
		Inclusive:          opts.Inclusive,
		CollectionPatterns: collectionPatterns,
		IgnorePatterns:     ignorePatterns,
	}, nil
}

// formatJSON formats a value as JSON.
func formatJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
