package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"play-probe/internal/publisher"
)

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the service account the key file authenticates as",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := publisher.LoadCredentials(a.cfg.CredentialsPath, publisher.Scope)
			if err != nil {
				return fmt.Errorf("credentials: %w", err)
			}
			a.out.Line("Service account: %s", creds.Email)
			a.out.Line("Key file: %s", creds.Path)
			return nil
		},
	}
}
