package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/starterkit/starterkit/internal/config"
	"github.com/starterkit/starterkit/internal/ctxlog"
	"github.com/starterkit/starterkit/internal/install"
	"github.com/starterkit/starterkit/internal/runner"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the tools starterkit depends on",
	Long: `Check that git and a package manager are available, and show which package
manager a new project without a lockfile would use.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDoctor(cmd.Context(), cmd.OutOrStdout(), runner.New())
	},
}

func runDoctor(ctx context.Context, w io.Writer, r runner.Runner) error {
	fmt.Fprintln(w, "Tools:")
	gitOK := checkBinary(w, r, "git")
	yarnOK := checkBinary(w, r, "yarnpkg")
	npmOK := checkBinary(w, r, "npm")

	fmt.Fprintln(w, "Settings:")
	fmt.Fprintf(w, "  [INFO] config file: %s\n", config.FilePath())
	fmt.Fprintf(w, "  [INFO] clone protocol: %s\n", config.Get(config.KeyCloneProtocol))
	fmt.Fprintf(w, "  [INFO] telemetry: %s\n", enabledString(newTelemetry(ctxlog.Discard()).Enabled()))

	// An empty scratch directory has no lockfile, so detection reflects the
	// yarn probe alone.
	probeDir, err := os.MkdirTemp("", "starterkit-doctor-")
	if err != nil {
		return fmt.Errorf("creating probe directory: %w", err)
	}
	defer os.RemoveAll(probeDir)
	d := install.Detect(ctx, r, probeDir)
	if d.Version != "" {
		fmt.Fprintf(w, "  [INFO] default package manager: %s %s (%s)\n", d.Manager, d.Version, d.Reason)
	} else {
		fmt.Fprintf(w, "  [INFO] default package manager: %s (%s)\n", d.Manager, d.Reason)
	}

	if !gitOK {
		fmt.Fprintln(w, "  [WARN] remote starters need git")
	}
	if !yarnOK && !npmOK {
		return fmt.Errorf("no package manager found; install yarn or npm, or use --skip-install")
	}
	return nil
}

func enabledString(ok bool) string {
	if ok {
		return "enabled"
	}
	return "disabled"
}

func checkBinary(w io.Writer, r runner.Runner, name string) bool {
	path, err := r.LookPath(name)
	if err != nil {
		fmt.Fprintf(w, "  [MISS] %s not found\n", name)
		return false
	}
	fmt.Fprintf(w, "  [ OK ] %s found at %s\n", name, path)
	return true
}
