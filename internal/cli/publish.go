package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"play-probe/internal/notify"
	"play-probe/internal/release"
	"play-probe/internal/util"
)

func newPublishCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "publish [package...]",
		Short: "Commit the latest pending edit of the first candidate that has one",
		RunE: func(cmd *cobra.Command, args []string) error {
			candidates, err := a.candidates(args)
			if err != nil {
				return err
			}

			ctx, cancel := a.context(cmd)
			defer cancel()
			client, creds, err := a.connect(ctx)
			if err != nil {
				return err
			}

			res, err := release.New(client, a.out, a.logger, creds.Email).PublishFirst(ctx, candidates)
			if err != nil {
				return err
			}
			a.notify(cmd, res)

			switch res.State {
			case release.Committed:
				return nil
			case release.CommitFailed:
				return a.negative(fmt.Errorf("commit %s for %s: %w", res.EditID, res.Package, res.Err))
			default:
				return a.negative(errNotPublished)
			}
		},
	}
}

// notify reports the result through the configured provider. Delivery
// problems are logged and never change the exit status.
func (a *app) notify(cmd *cobra.Command, res release.Result) {
	n, err := notify.NewNotifier(a.cfg)
	if err != nil {
		a.logger.Warn("notifier unavailable", "provider", a.cfg.NotifyProvider, "err", err)
		return
	}
	text := fmt.Sprintf("[%s] %s", util.NowISO(), res.Summary())
	if err := n.Notify(cmd.Context(), text); err != nil {
		a.logger.Warn("notify failed", "provider", n.Name(), "err", err)
		return
	}
	a.logger.Debug("notified", "provider", n.Name())
}
