package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/starterkit/starterkit/internal/branding"
	"github.com/starterkit/starterkit/internal/config"
	"github.com/starterkit/starterkit/internal/updater"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` creates new projects from starters: a local directory or a
hosted git repository (GitHub, GitLab, Bitbucket).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()

		// Skip banners for commands that manage their own state.
		switch cmd.Name() {
		case "update", "version", "config", "get", "set":
			return
		}
		if !config.Bool(config.KeyUpdateCheck) {
			return
		}

		// Non-blocking banner from cached version check.
		u := updater.New(buildVersion, branding.GitHubRepo())
		u.CheckAndPrintBanner(cmd.ErrOrStderr(), branding.CLIName(), config.Dir())
	},
}

// Execute runs the root command with build info injected via ldflags.
// Failures are reported on stderr before being returned.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd, err := rootCmd.ExecuteContextC(ctx)
	if err != nil {
		reportError(cmd.ErrOrStderr(), err)
	}
	return err
}
