package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/starterkit/starterkit/internal/bootstrap"
	"github.com/starterkit/starterkit/internal/pkgname"
)

func init() {
	rootCmd.AddCommand(checkNameCmd)
}

var checkNameCmd = &cobra.Command{
	Use:   "check-name <name>",
	Short: "Check whether a project name follows npm naming rules",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := pkgname.Validate(args[0])
		if err != nil {
			return err
		}
		if !res.ValidForNewPackages {
			return &bootstrap.NameError{Result: res}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%q is a valid project name\n", res.Name)
		return nil
	},
}
