package probe

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"
)

type Outcome int

const (
	OtherError Outcome = iota
	FoundAccessible
	NotFound
	Forbidden
)

func (o Outcome) String() string {
	switch o {
	case FoundAccessible:
		return "found"
	case NotFound:
		return "not_found"
	case Forbidden:
		return "forbidden"
	default:
		return "error"
	}
}

// Classify maps the error of a remote call to an outcome. A nil error is a
// success.
func Classify(err error) Outcome {
	if err == nil {
		return FoundAccessible
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusNotFound:
			return NotFound
		case http.StatusForbidden:
			return Forbidden
		}
	}
	return OtherError
}

// Aborted reports whether err comes from a cancelled or expired context.
// Such errors end the run instead of advancing to the next candidate.
func Aborted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
