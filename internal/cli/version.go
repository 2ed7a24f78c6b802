package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	latest "github.com/tcnksm/go-latest"
)

var versionCheck bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the imgsift version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), rootCmd.Version)
		if versionCheck {
			checkLatestVersion(rootCmd.Version)
		}
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionCheck, "check", false,
		"Check GitHub for a newer release")
}

// checkLatestVersion asks GitHub for the newest tag. Failures are silent;
// the check is advisory and must never break the command.
func checkLatestVersion(current string) {
	githubTag := &latest.GithubTag{
		Owner:      "imgsift",
		Repository: "imgsift",
	}
	res, err := latest.Check(githubTag, current)
	if err != nil {
		return
	}
	if res.Outdated {
		PrintWarning(fmt.Sprintf("A new version is available: %s (you have %s)", res.Current, current))
		PrintInfo("Download it from https://github.com/imgsift/imgsift/releases")
		return
	}
	PrintSuccess(fmt.Sprintf("You are using the latest version: %s", current))
}
