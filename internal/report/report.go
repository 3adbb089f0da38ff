// Package report prints human readable probe and publish status lines.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

type Reporter struct {
	w io.Writer

	ok   lipgloss.Style
	fail lipgloss.Style
	warn lipgloss.Style
	head lipgloss.Style
}

func New(w io.Writer) *Reporter {
	r := lipgloss.NewRenderer(w)
	return &Reporter{
		w:    w,
		ok:   r.NewStyle().Foreground(lipgloss.Color("2")),
		fail: r.NewStyle().Foreground(lipgloss.Color("1")),
		warn: r.NewStyle().Foreground(lipgloss.Color("3")),
		head: r.NewStyle().Bold(true),
	}
}

func (r *Reporter) Line(format string, args ...any) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

func (r *Reporter) Blank() {
	fmt.Fprintln(r.w)
}

func (r *Reporter) Heading(format string, args ...any) {
	fmt.Fprintln(r.w, r.head.Render(fmt.Sprintf(format, args...)))
}

func (r *Reporter) Success(format string, args ...any) {
	r.marked(r.ok, "✅", format, args...)
}

func (r *Reporter) Failure(format string, args ...any) {
	r.marked(r.fail, "❌", format, args...)
}

func (r *Reporter) Warning(format string, args ...any) {
	r.marked(r.warn, "⚠️", format, args...)
}

func (r *Reporter) Celebrate(format string, args ...any) {
	r.marked(r.ok, "🎉", format, args...)
}

// Indented variants are used for per-method lines under a candidate.
func (r *Reporter) SubSuccess(format string, args ...any) { r.Success("  "+format, args...) }
func (r *Reporter) SubFailure(format string, args ...any) { r.Failure("  "+format, args...) }
func (r *Reporter) SubWarning(format string, args ...any) { r.Warning("  "+format, args...) }

func (r *Reporter) marked(style lipgloss.Style, mark, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	indent := ""
	for len(msg) > 0 && msg[0] == ' ' {
		indent += " "
		msg = msg[1:]
	}
	fmt.Fprintf(r.w, "%s%s %s\n", indent, style.Render(mark), msg)
}

// Remediation prints the console steps that grant the service account access
// to an app.
func (r *Reporter) Remediation(email string) {
	r.Line("")
	r.Line("To fix this:")
	r.Line("1. Go to https://play.google.com/console/")
	r.Line("2. Navigate to Setup > API access")
	r.Line("3. Find 'Service accounts' section")
	r.Line("4. Click 'Link service account'")
	r.Line("5. Enter: %s", email)
	r.Line("6. Grant permissions:")
	r.Line("   - ✅ Release apps to testing tracks")
	r.Line("   - ✅ View app information and download bulk reports")
	r.Line("7. Click 'Invite user'")
}
