package release

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"play-probe/internal/models"
	"play-probe/internal/probe"
	"play-probe/internal/report"
)

type API interface {
	ListEdits(ctx context.Context, packageName string) ([]models.Edit, error)
	CommitEdit(ctx context.Context, packageName, editID string) (models.Edit, error)
}

type State int

const (
	Exhausted State = iota
	Committed
	CommitFailed
)

func (s State) String() string {
	switch s {
	case Committed:
		return "committed"
	case CommitFailed:
		return "commit_failed"
	default:
		return "exhausted"
	}
}

type Result struct {
	State   State
	Package string
	EditID  string
	Err     error
}

// Summary is a one line description of the result, used for notifications.
func (r Result) Summary() string {
	switch r.State {
	case Committed:
		return fmt.Sprintf("Published release edit %s for %s", r.EditID, r.Package)
	case CommitFailed:
		return fmt.Sprintf("Publishing edit %s for %s failed: %v", r.EditID, r.Package, r.Err)
	default:
		return "No existing releases found to publish"
	}
}

type Committer struct {
	api    API
	out    *report.Reporter
	logger *log.Logger
	email  string
}

func New(api API, out *report.Reporter, logger *log.Logger, email string) *Committer {
	return &Committer{api: api, out: out, logger: logger, email: email}
}

// PublishFirst commits the first pending edit of the first candidate that has
// any. The edit taken is element zero of the list as the service returned it.
// A failed commit is terminal: it is neither retried nor rolled back.
func (c *Committer) PublishFirst(ctx context.Context, candidates []string) (Result, error) {
	for _, pkg := range candidates {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		c.out.Blank()
		c.out.Line("Trying package: %s", pkg)

		edits, err := c.api.ListEdits(ctx, pkg)
		if err != nil {
			if probe.Aborted(err) {
				return Result{}, err
			}
			c.logger.Debug("list edits", "package", pkg, "outcome", probe.Classify(err))
			switch probe.Classify(err) {
			case probe.NotFound:
				c.out.Line("Package %s not found", pkg)
			case probe.Forbidden:
				c.out.Failure("Service account doesn't have access to %s", pkg)
				c.out.Remediation(c.email)
			default:
				c.out.Warning("Error with %s: %v", pkg, err)
			}
			continue
		}
		if len(edits) == 0 {
			c.out.Line("No existing edits found for %s", pkg)
			continue
		}

		editID := edits[0].ID
		c.out.Line("Found existing edits for %s", pkg)
		c.out.Line("Latest edit ID: %s", editID)

		committed, err := c.api.CommitEdit(ctx, pkg, editID)
		if err != nil {
			if probe.Aborted(err) {
				return Result{}, err
			}
			c.logger.Error("commit failed", "package", pkg, "edit", editID, "err", err)
			c.out.Failure("Commit of edit %s for %s failed: %v", editID, pkg, err)
			return Result{State: CommitFailed, Package: pkg, EditID: editID, Err: err}, nil
		}
		c.logger.Info("committed", "package", pkg, "edit", committed.ID)
		c.out.Success("SUCCESS! Published release for %s", pkg)
		c.out.Line("Commit response: edit %s", committed.ID)
		return Result{State: Committed, Package: pkg, EditID: editID}, nil
	}

	c.out.Blank()
	c.out.Failure("No existing releases found to publish")
	return Result{State: Exhausted}, nil
}
