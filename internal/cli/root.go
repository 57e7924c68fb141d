package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// BuildInfo contains build-time information
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

var buildInfo BuildInfo

// rootCmd is the one and only command: scan a repository's branch names
// for JIRA ticket references and report each ticket's current status.
var rootCmd = &cobra.Command{
	Use:   "jira-branch-checker",
	Short: "Report the JIRA status of tickets referenced by Git branch names",
	Long: `JIRA Branch Checker - find out which branches still matter.

This tool lists every local and remote-tracking branch of a Git repository,
extracts JIRA ticket keys (e.g. PROJ-123) from the branch names, looks each
ticket up in JIRA, and prints a report of ticket, status, and browse link.

Credentials are requested interactively on first use and can be saved per
JIRA endpoint for later runs. Saved tokens are validated against the server
before being trusted.`,
	Example: `  # Check the repository in the current directory
  jira-branch-checker

  # Check another repository against a self-hosted JIRA
  jira-branch-checker --repo ../service --jira-url https://jira.corp.example.com

  # Skip authentication against a JIRA that allows anonymous reads
  jira-branch-checker --jira-url https://jira.public.example.com --no-auth

  # CSV output sorted by ticket key
  jira-branch-checker --format csv --sort ticket

  # Forget the saved token for the endpoint and re-prompt
  jira-branch-checker --clear-token`,
	RunE:          runCheck,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. This is called by main.main().
func Execute(info BuildInfo) error {
	buildInfo = info
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringP("repo", "r", ".", "Path to the Git repository to scan")
	rootCmd.Flags().StringP("jira-url", "j", "", "JIRA base URL (default: the built-in endpoint)")
	rootCmd.Flags().StringP("username", "u", "", "JIRA username; must match the saved credential to reuse it")
	rootCmd.Flags().Bool("no-auth", false, "Skip authentication (ignored for the built-in endpoint)")
	rootCmd.Flags().Bool("clear-token", false, "Forget the saved token for this endpoint before running")
	rootCmd.Flags().StringP("format", "f", "", "Output format (table, csv)")
	rootCmd.Flags().StringP("sort", "s", "", "Report order (status, ticket)")
	rootCmd.Flags().Bool("no-progress", false, "Suppress per-ticket progress output")
	rootCmd.Flags().Duration("delay", 0, "Minimum gap between JIRA requests (e.g. 500ms) for busy instances")

	rootCmd.PersistentFlags().StringP("log-level", "l", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (text, json)")
}
