package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"play-probe/internal/probe"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [package]",
		Short: "Check that the service account can access one package",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg := a.cfg.PackageName
			if len(args) == 1 {
				pkg = args[0]
			}
			if pkg == "" {
				return errNoPackage
			}

			ctx, cancel := a.context(cmd)
			defer cancel()
			client, creds, err := a.connect(ctx)
			if err != nil {
				return err
			}
			outcome, err := probe.New(client, a.out, a.logger, creds.Email).CheckAccess(ctx, pkg)
			if err != nil {
				return err
			}
			if outcome != probe.FoundAccessible {
				return a.negative(fmt.Errorf("access check for %s: %s", pkg, outcome))
			}
			return nil
		},
	}
}
