package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chambrid/jira-branch-checker/internal/check"
	"github.com/chambrid/jira-branch-checker/internal/logger"
	"github.com/chambrid/jira-branch-checker/pkg/auth"
	"github.com/chambrid/jira-branch-checker/pkg/client"
	"github.com/chambrid/jira-branch-checker/pkg/config"
	"github.com/chambrid/jira-branch-checker/pkg/git"
	"github.com/chambrid/jira-branch-checker/pkg/ratelimit"
	"github.com/chambrid/jira-branch-checker/pkg/ticket"
	"github.com/chambrid/jira-branch-checker/pkg/tokenstore"
)

func runCheck(cmd *cobra.Command, args []string) error {
	repoPath, _ := cmd.Flags().GetString("repo")
	noAuth, _ := cmd.Flags().GetBool("no-auth")
	clearToken, _ := cmd.Flags().GetBool("clear-token")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	// Step 1: Load configuration (.env, config file, environment, flags)
	cfg, err := loadConfiguration()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := applyFlagOverrides(cmd, cfg); err != nil {
		return err
	}

	if err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	// Ctrl-C cancels the run; main translates the cancellation into exit 130.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := tokenstore.NewFileStore(cfg.TokenFile, log)
	if clearToken {
		removed, err := store.Clear(cfg.JIRABaseURL)
		if err != nil {
			return fmt.Errorf("failed to clear saved token: %w", err)
		}
		if removed {
			fmt.Printf("🧹 Cleared saved token for %s\n", cfg.JIRABaseURL)
		} else {
			fmt.Printf("No saved token for %s\n", cfg.JIRABaseURL)
		}
	}

	// Step 2: Collect ticket keys from branch names
	fmt.Printf("📁 Scanning branches in %s...\n", repoPath)
	branches, err := git.NewGoGitLister().Branches(repoPath)
	if err != nil {
		return fmt.Errorf("failed to list branches: %w", err)
	}

	keys := ticket.Extract(branches)
	if len(keys) == 0 {
		fmt.Println("No JIRA tickets found in branch names.")
		return nil
	}
	fmt.Printf("🎫 Found %d ticket(s) across %d branch(es)\n", len(keys), len(branches))

	// Step 3: Authenticate
	cred, err := authenticate(ctx, cfg, store, noAuth, log)
	if err != nil {
		return err
	}

	jiraClient, err := client.NewClient(cfg.JIRABaseURL, cred, cfg.HTTPTimeout)
	if err != nil {
		return fmt.Errorf("failed to create JIRA client: %w", err)
	}

	// Step 4: Resolve every ticket against JIRA
	requiresAuth := cfg.JIRABaseURL == config.DefaultJIRABaseURL
	engine := check.NewEngine(jiraClient, cfg.JIRABaseURL, cred != nil, requiresAuth,
		ratelimit.NewFixedDelay(cfg.RequestDelay), log)

	progressDone := make(chan bool, 1)
	go func() {
		defer func() { progressDone <- true }()
		monitorProgress(engine.GetProgressChannel(), noProgress)
	}()

	tickets, err := engine.Resolve(ctx, keys)
	<-progressDone
	if err != nil {
		return err
	}

	// Step 5: Report
	check.Sort(tickets, cfg.SortOrder)
	return renderReport(os.Stdout, tickets, cfg.OutputFormat)
}

// loadConfiguration layers the optional .env file under the process
// environment, then the optional YAML config file under that.
func loadConfiguration() (*config.Config, error) {
	envCfg, err := config.NewDotEnvLoader().Load()
	if err != nil {
		return nil, err
	}

	configFile := filepath.Join(envCfg.ConfigDir, "config.yaml")
	return config.NewFileLoader(configFile).Load()
}

// applyFlagOverrides lets explicitly provided flags win over every other
// configuration source, then re-validates the result.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("jira-url") {
		raw, _ := cmd.Flags().GetString("jira-url")
		cfg.JIRABaseURL = config.NormalizeBaseURL(raw)
	}
	if cmd.Flags().Changed("username") {
		cfg.Username, _ = cmd.Flags().GetString("username")
	}
	if cmd.Flags().Changed("format") {
		cfg.OutputFormat, _ = cmd.Flags().GetString("format")
	}
	if cmd.Flags().Changed("sort") {
		cfg.SortOrder, _ = cmd.Flags().GetString("sort")
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat, _ = cmd.Flags().GetString("log-format")
	}
	if cmd.Flags().Changed("delay") {
		cfg.RequestDelay, _ = cmd.Flags().GetDuration("delay")
	}

	return config.NewLoader().Validate(cfg)
}

// authenticate obtains usable credentials for the configured endpoint,
// probing saved tokens before trusting them. A nil credential with a nil
// error means the run proceeds unauthenticated.
func authenticate(ctx context.Context, cfg *config.Config, store tokenstore.Store, noAuth bool, log *zap.Logger) (*tokenstore.Credential, error) {
	probe := func(ctx context.Context, endpoint string, cred tokenstore.Credential) error {
		probeClient, err := client.NewClient(endpoint, &cred, cfg.HTTPTimeout)
		if err != nil {
			return err
		}
		probeCtx, cancel := context.WithTimeout(ctx, cfg.ProbeTimeout)
		defer cancel()
		return probeClient.ProbeIdentity(probeCtx)
	}

	authenticator := auth.NewAuthenticator(store, auth.NewTerminalPrompter(), probe, auth.Options{
		DefaultEndpoint: config.DefaultJIRABaseURL,
		MaxAttempts:     cfg.MaxAuthAttempts,
		Logger:          log,
	})

	return authenticator.Authenticate(ctx, cfg.JIRABaseURL, cfg.Username, noAuth)
}

// monitorProgress rewrites a single status line per resolved ticket and
// clears it once resolution finishes.
func monitorProgress(progressChan <-chan check.ProgressUpdate, quiet bool) {
	shown := false
	for update := range progressChan {
		if quiet {
			continue
		}
		fmt.Fprintf(os.Stderr, "\r[%d/%d] Checking %s...   ",
			update.ProcessedCount, update.TotalCount, update.CurrentKey)
		shown = true
	}
	if shown {
		fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", 60))
	}
}
