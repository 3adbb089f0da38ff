// Package cli wires the playprobe command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"play-probe/internal/config"
	"play-probe/internal/publisher"
	"play-probe/internal/report"
)

var (
	errNoCandidates = errors.New("no candidate package names: pass them as arguments, --candidates-file or PLAY_PACKAGE_CANDIDATES")
	errNoPackage    = errors.New("no package name: pass it as an argument or set PLAY_PACKAGE_NAME")
	errNotFound     = errors.New("no accessible package found")
	errNotPublished = errors.New("nothing was published")
)

// app holds the state shared by every command of one invocation.
type app struct {
	cfg    config.Config
	logger *log.Logger
	out    *report.Reporter

	credentials    string
	candidatesFile string
	logLevel       string
	timeout        time.Duration
	strict         bool
}

func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "playprobe",
		Short: "Probe Google Play Console package names and publish pending edits",
		Long: "playprobe checks which package names a service account can reach on a Google Play " +
			"Console account, explains how to grant missing access, and can commit a pending release edit.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.credentials, "credentials", "", "Service account key file (default $PLAY_CREDENTIALS_JSON)")
	f.StringVar(&a.candidatesFile, "candidates-file", "", "YAML file with a 'candidates' list of package names")
	f.StringVar(&a.logLevel, "log-level", "", "Diagnostic log level: debug, info, warn, error")
	f.DurationVar(&a.timeout, "timeout", 0, "Abort the run after this long (0 waits forever)")
	f.BoolVar(&a.strict, "strict", false, "Exit non-zero when nothing is found or published")

	root.AddCommand(newFindCmd(a))
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newPublishCmd(a))
	root.AddCommand(newWhoamiCmd(a))
	return root
}

// Execute runs the command tree; ctx is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if a.credentials != "" {
		cfg.CredentialsPath = a.credentials
	}
	if a.candidatesFile != "" {
		cfg.CandidatesFile = a.candidatesFile
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg

	lvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	a.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "playprobe",
		Level:  lvl,
	}).With("run", uuid.NewString())
	a.out = report.New(cmd.OutOrStdout())
	return nil
}

func (a *app) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if a.timeout > 0 {
		return context.WithTimeout(ctx, a.timeout)
	}
	return context.WithCancel(ctx)
}

// connect loads the key file and builds the API client. A missing or broken
// key file ends the run before any remote call.
func (a *app) connect(ctx context.Context) (*publisher.Client, publisher.Credentials, error) {
	creds, err := publisher.LoadCredentials(a.cfg.CredentialsPath, publisher.Scope)
	if err != nil {
		return nil, publisher.Credentials{}, fmt.Errorf("credentials: %w", err)
	}
	client, err := publisher.New(ctx, creds, a.cfg.APIEndpoint)
	if err != nil {
		return nil, publisher.Credentials{}, fmt.Errorf("publisher: %w", err)
	}
	a.logger.Info("authenticated", "email", creds.Email, "key", creds.Path)
	return client, creds, nil
}

// candidates resolves the ordered package names: arguments first, then the
// candidates file, then PLAY_PACKAGE_CANDIDATES.
func (a *app) candidates(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if a.cfg.CandidatesFile != "" {
		list, err := config.LoadCandidatesFile(a.cfg.CandidatesFile)
		if err != nil {
			return nil, err
		}
		if len(list) > 0 {
			return list, nil
		}
	}
	if len(a.cfg.Candidates) > 0 {
		return a.cfg.Candidates, nil
	}
	return nil, errNoCandidates
}
