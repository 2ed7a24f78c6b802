package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/imgsift/imgsift/internal/fsops"
	"github.com/imgsift/imgsift/internal/queue"
)

var scanCmd = &cobra.Command{
	Use:   "scan <source>...",
	Short: "List what a session would queue without starting one",
	Long: `Walk the given sources with the session's queueing rules and list the
collections that would be offered for triage, in the order the session
would serve them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

type scanEntry struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	Size    string `json:"size"`
	Members int    `json:"members"`
}

func runScan(cmd *cobra.Command, args []string) error {
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

	q := queue.New(fsops.NewRealFS())
	for _, root := range args {
		if err := q.Add(root, walkOpts); err != nil {
			return err
		}
	}
	q.Sort(criterion, descending)

	pending := q.Pending()
	entries := make([]scanEntry, len(pending))
	for i, c := range pending {
		entries[i] = scanEntry{
			Name:    c.Name,
			Path:    c.Path,
			Kind:    c.Kind().String(),
			Size:    c.HumanSize(),
			Members: len(c.Members),
		}
	}

	if jsonOutput {
		return outputJSON(entries)
	}

	if len(entries) == 0 {
		PrintEmptyState("Nothing would be queued.")
		return nil
	}

	headers := []string{"NAME", "KIND", "SIZE", "FILES"}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.Name, e.Kind, e.Size, strconv.Itoa(e.Members)}
	}
	PrintTable(headers, rows)
	PrintInfo("")
	PrintInfo(PrintCount(len(entries), "collection would be queued", "collections would be queued"))
	return nil
}
