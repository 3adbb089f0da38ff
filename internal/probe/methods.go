package probe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"play-probe/internal/models"
)

const cleanupTimeout = 10 * time.Second

// API is the subset of the Play Developer API the probes call.
type API interface {
	ListEdits(ctx context.Context, packageName string) ([]models.Edit, error)
	InsertEdit(ctx context.Context, packageName string) (models.Edit, error)
	GetEdit(ctx context.Context, packageName, editID string) (models.Edit, error)
	DeleteEdit(ctx context.Context, packageName, editID string) error
	ListReviews(ctx context.Context, packageName string) (int, error)
}

// Method is one way of asking the service whether a package is visible.
// Run returns a short human readable detail on success.
type Method struct {
	Name string
	Run  func(ctx context.Context, api API, packageName string, logger *log.Logger) (string, error)
}

var ListEdits = Method{
	Name: "edits.list",
	Run: func(ctx context.Context, api API, pkg string, _ *log.Logger) (string, error) {
		edits, err := api.ListEdits(ctx, pkg)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d pending edit(s)", len(edits)), nil
	},
}

var InsertEdit = Method{
	Name: "edits.insert",
	Run: func(ctx context.Context, api API, pkg string, _ *log.Logger) (string, error) {
		e, err := api.InsertEdit(ctx, pkg)
		if err != nil {
			return "", err
		}
		return "Edit ID: " + e.ID, nil
	},
}

var ListReviews = Method{
	Name: "reviews.list",
	Run: func(ctx context.Context, api API, pkg string, _ *log.Logger) (string, error) {
		n, err := api.ListReviews(ctx, pkg)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d review(s)", n), nil
	},
}

// GetEdit opens a throwaway edit, reads its metadata back and deletes it.
var GetEdit = Method{
	Name: "edits.get",
	Run: func(ctx context.Context, api API, pkg string, logger *log.Logger) (string, error) {
		e, err := api.InsertEdit(ctx, pkg)
		if err != nil {
			return "", err
		}
		got, err := api.GetEdit(ctx, pkg, e.ID)
		// The throwaway edit is removed even when the run was cancelled.
		dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
		defer cancel()
		if derr := api.DeleteEdit(dctx, pkg, e.ID); derr != nil {
			logger.Warn("probe edit left open", "package", pkg, "edit", e.ID, "err", derr)
		}
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Edit ID: %s (expires %s)", got.ID, got.ExpiryTimeSeconds), nil
	},
}

// DefaultMethods are tried in order by FindAll.
func DefaultMethods() []Method {
	return []Method{ListEdits, InsertEdit, ListReviews}
}

func MethodByName(name string) (Method, error) {
	for _, m := range []Method{ListEdits, InsertEdit, ListReviews, GetEdit} {
		if m.Name == strings.TrimSpace(name) {
			return m, nil
		}
	}
	return Method{}, fmt.Errorf("unknown probe method: %s", name)
}
