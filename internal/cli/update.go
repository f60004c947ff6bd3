package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/starterkit/starterkit/internal/branding"
	"github.com/starterkit/starterkit/internal/config"
	"github.com/starterkit/starterkit/internal/updater"
)

func init() {
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check for a newer starterkit release",
	Long: `Ask GitHub for the latest starterkit release, refresh the cached result used
by the startup banner and print where to get the new version.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		u := updater.New(buildVersion, branding.GitHubRepo())

		fmt.Fprintln(cmd.ErrOrStderr(), "Checking for updates...")
		cache, err := u.RefreshCache(cmd.Context(), config.Dir())
		if err != nil {
			return fmt.Errorf("checking for updates: %w", err)
		}
		if !cache.UpdateAvailable {
			fmt.Fprintf(w, "You are on the latest version (%s)\n", buildVersion)
			return nil
		}
		updater.PrintUpdateBanner(w, branding.CLIName(), buildVersion, cache.LatestVersion, cache.ReleaseURL)
		return nil
	},
}
