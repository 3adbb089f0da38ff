package notify

import "context"

type Notifier interface {
	Name() string

	// Notify delivers a one line status message about a finished run.
	Notify(ctx context.Context, text string) error
}

// Nop drops every message.
type Nop struct{}

func (Nop) Name() string { return "none" }

func (Nop) Notify(ctx context.Context, text string) error { return nil }
