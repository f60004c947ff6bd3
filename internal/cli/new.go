package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/starterkit/starterkit/internal/bootstrap"
	"github.com/starterkit/starterkit/internal/branding"
	"github.com/starterkit/starterkit/internal/config"
	"github.com/starterkit/starterkit/internal/ctxlog"
	"github.com/starterkit/starterkit/internal/envfile"
	"github.com/starterkit/starterkit/internal/fetch"
	"github.com/starterkit/starterkit/internal/install"
	"github.com/starterkit/starterkit/internal/runner"
	"github.com/starterkit/starterkit/internal/starter"
	"github.com/starterkit/starterkit/internal/telemetry"
)

const telemetryFlushTimeout = 2 * time.Second

func init() {
	newCmd.Flags().Bool("skip-install", false, "Skip installing dependencies")
	newCmd.Flags().Bool("verbose", false, "Show git and package manager output")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <name> <starter>",
	Short: "Create a new project from a starter",
	Long: `Create a new project directory called <name> and populate it from <starter>.

<starter> is either a local directory or a hosted git repository:

  starterkit new my-theme ./starters/basic
  starterkit new my-theme org/starter-theme
  starterkit new my-theme git@github.com:org/starter-theme.git#v2
  starterkit new my-theme https://gitlab.com/org/starter-theme --skip-install`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.BindFlags(cmd.Flags(), "skip-install", "verbose"); err != nil {
			return err
		}

		opts := bootstrap.Options{
			SkipInstall: config.Bool(config.KeySkipInstall),
			Verbose:     config.Bool(config.KeyVerbose),
			Protocol:    starter.ParseProtocol(config.Get(config.KeyCloneProtocol)),
		}

		stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
		logger := ctxlog.New(stderr, opts.Verbose)
		ctx := ctxlog.WithLogger(cmd.Context(), logger)

		tel := newTelemetry(logger)
		defer tel.Flush(telemetryFlushTimeout)

		r := runner.New()
		b := bootstrap.New(
			fetch.New(r, fetch.WithOutput(stdout, stderr)),
			envfile.New(config.StringSlice(config.KeyEnvKeys)),
			install.New(r, install.WithOutput(stdout, stderr)),
			bootstrap.WithTelemetry(tel),
			bootstrap.WithVersion(telemetry.NormalizeVersion(buildVersion)),
		)

		res, err := b.Run(ctx, args[0], args[1], opts)
		if err != nil {
			return err
		}
		printNextSteps(stdout, res, opts)
		return nil
	},
}

func newTelemetry(logger *slog.Logger) *telemetry.Client {
	enabled := config.Bool(config.KeyTelemetry) &&
		!telemetry.DisabledByEnv(os.LookupEnv, branding.EnvVar("TELEMETRY_DISABLED"))
	return telemetry.New(enabled, config.Get(config.KeyTelemetryURL), config.Dir(),
		telemetry.WithLogger(logger))
}

func printNextSteps(w io.Writer, res *bootstrap.Result, opts bootstrap.Options) {
	rel := res.Name
	if wd, err := os.Getwd(); err == nil {
		if r, err := filepath.Rel(wd, res.Root); err == nil {
			rel = r
		}
	}

	fmt.Fprintf(w, "\nCreated %s at %s\n", res.Name, res.Root)
	fmt.Fprintln(w, "\nNext steps:")
	fmt.Fprintf(w, "  1. cd %s\n", rel)
	if opts.SkipInstall {
		fmt.Fprintln(w, "  2. Install dependencies (yarn or npm install)")
		fmt.Fprintf(w, "  3. Fill in %s\n", envfile.FileName)
		return
	}
	fmt.Fprintf(w, "  2. Fill in %s\n", envfile.FileName)
}
