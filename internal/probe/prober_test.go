package probe_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"play-probe/internal/probe"
	"play-probe/internal/publisher"
	"play-probe/internal/report"
	"play-probe/internal/test/playtest"
)

const email = "uploader@example-project.iam.gserviceaccount.com"

func newProber(t *testing.T, srv *playtest.Server) (*probe.Prober, *bytes.Buffer) {
	t.Helper()
	client, err := publisher.NewWithHTTPClient(context.Background(), srv.Client(), srv.Endpoint())
	require.NoError(t, err)
	var out bytes.Buffer
	return probe.New(client, report.New(&out), log.New(io.Discard), email), &out
}

func callMethods(calls []playtest.Call, pkg string) []string {
	out := []string{}
	for _, c := range calls {
		if c.Package == pkg {
			out = append(out, c.Method)
		}
	}
	return out
}

func TestFindFirst_StopsAtFirstAccessible(t *testing.T) {
	srv := playtest.New(t, map[string]*playtest.Package{
		"com.example.third":  {},
		"com.example.fourth": {},
	})
	p, out := newProber(t, srv)

	pkg, ok, err := p.FindFirst(context.Background(), []string{
		"com.example.first", "com.example.second", "com.example.third", "com.example.fourth",
	})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "com.example.third", pkg)

	calls := srv.Calls()
	require.Len(t, calls, 3)
	for _, c := range calls {
		assert.Equal(t, playtest.MethodInsertEdit, c.Method)
	}
	assert.Empty(t, callMethods(calls, "com.example.fourth"))

	assert.Contains(t, out.String(), "❌ Package com.example.first not found\n")
	assert.Contains(t, out.String(), "✅ FOUND: Package com.example.third exists!\n")
	assert.Contains(t, out.String(), "Edit ID: com.example.third-probe\n")
}

func TestFindFirst_NoneFound(t *testing.T) {
	srv := playtest.New(t, nil)
	p, out := newProber(t, srv)

	pkg, ok, err := p.FindFirst(context.Background(), []string{"com.example.a", "com.example.b"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, pkg)
	assert.Contains(t, out.String(), "No accessible package found")
	assert.Len(t, srv.Calls(), 2)
}

func TestFindFirst_ForbiddenPrintsRemediationAndContinues(t *testing.T) {
	srv := playtest.New(t, map[string]*playtest.Package{
		"com.example.locked": {Status: http.StatusForbidden},
		"com.example.app":    {},
	})
	p, out := newProber(t, srv)

	pkg, ok, err := p.FindFirst(context.Background(), []string{"com.example.locked", "com.example.app"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "com.example.app", pkg)

	assert.Equal(t, []playtest.Call{
		{Method: playtest.MethodInsertEdit, Package: "com.example.locked"},
		{Method: playtest.MethodInsertEdit, Package: "com.example.app"},
	}, srv.Calls())

	var want bytes.Buffer
	r := report.New(&want)
	r.Failure("Service account doesn't have access to %s", "com.example.locked")
	r.Remediation(email)
	r.Success("FOUND: Package %s exists!", "com.example.app")
	assert.Contains(t, out.String(), want.String())
}

func TestFindFirst_Idempotent(t *testing.T) {
	srv := playtest.New(t, map[string]*playtest.Package{
		"com.example.locked": {Status: http.StatusForbidden},
		"com.example.app":    {},
	})
	candidates := []string{"com.example.missing", "com.example.locked", "com.example.app"}

	p1, out1 := newProber(t, srv)
	pkg1, ok1, err1 := p1.FindFirst(context.Background(), candidates)
	p2, out2 := newProber(t, srv)
	pkg2, ok2, err2 := p2.FindFirst(context.Background(), candidates)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, pkg1, pkg2)
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, out1.String(), out2.String())
	assert.Equal(t, "com.example.app", pkg1)
}

func TestFindAll_KthCandidate(t *testing.T) {
	srv := playtest.New(t, map[string]*playtest.Package{
		"com.example.second": {},
	})
	p, out := newProber(t, srv)

	found, err := p.FindAll(context.Background(), []string{"com.example.first", "com.example.second", "com.example.third"})
	require.NoError(t, err)
	assert.Equal(t, []string{"com.example.second"}, found)

	calls := srv.Calls()
	all := []string{playtest.MethodListEdits, playtest.MethodInsertEdit, playtest.MethodListReviews}
	assert.Equal(t, all, callMethods(calls, "com.example.first"))
	assert.Equal(t, []string{playtest.MethodListEdits}, callMethods(calls, "com.example.second"))
	assert.Equal(t, all, callMethods(calls, "com.example.third"))

	assert.Contains(t, out.String(), "Service account: "+email)
	assert.Contains(t, out.String(), "  ✅ edits.list succeeded!\n")
	assert.Contains(t, out.String(), "  Result: 0 pending edit(s)\n")
	assert.Contains(t, out.String(), "🎉 Found accessible packages: com.example.second\n")
}

func TestFindAll_FallsThroughMethods(t *testing.T) {
	srv := playtest.New(t, map[string]*playtest.Package{
		"com.example.app": {MethodStatus: map[string]int{
			playtest.MethodListEdits:  http.StatusNotFound,
			playtest.MethodInsertEdit: http.StatusInternalServerError,
		}},
	})
	p, out := newProber(t, srv)

	found, err := p.FindAll(context.Background(), []string{"com.example.app"})
	require.NoError(t, err)
	assert.Equal(t, []string{"com.example.app"}, found)
	assert.Equal(t,
		[]string{playtest.MethodListEdits, playtest.MethodInsertEdit, playtest.MethodListReviews},
		callMethods(srv.Calls(), "com.example.app"))
	assert.Contains(t, out.String(), "  ❌ edits.list: Package not found\n")
	assert.Contains(t, out.String(), "  ⚠️ edits.insert: ")
	assert.Contains(t, out.String(), "  ✅ reviews.list succeeded!\n")
}

func TestFindAll_ForbiddenStopsCandidateOnly(t *testing.T) {
	srv := playtest.New(t, map[string]*playtest.Package{
		"com.example.locked": {Status: http.StatusForbidden},
		"com.example.app":    {},
	})
	p, out := newProber(t, srv)

	found, err := p.FindAll(context.Background(), []string{"com.example.locked", "com.example.app"})
	require.NoError(t, err)
	assert.Equal(t, []string{"com.example.app"}, found)
	assert.Equal(t, []string{playtest.MethodListEdits}, callMethods(srv.Calls(), "com.example.locked"))

	var want bytes.Buffer
	report.New(&want).Remediation(email)
	assert.Contains(t, out.String(), want.String())
}

func TestFindAll_NoneFound(t *testing.T) {
	srv := playtest.New(t, nil)
	p, out := newProber(t, srv)

	found, err := p.FindAll(context.Background(), []string{"com.example.a"})
	require.NoError(t, err)
	assert.Empty(t, found)
	assert.Contains(t, out.String(), "❌ No accessible package found\n")
}

func TestFindAll_CustomMethods(t *testing.T) {
	srv := playtest.New(t, map[string]*playtest.Package{"com.example.app": {}})
	p, _ := newProber(t, srv)

	m, err := probe.MethodByName("reviews.list")
	require.NoError(t, err)
	found, err := p.FindAll(context.Background(), []string{"com.example.app"}, m)
	require.NoError(t, err)
	assert.Equal(t, []string{"com.example.app"}, found)
	assert.Equal(t, []string{playtest.MethodListReviews}, callMethods(srv.Calls(), "com.example.app"))

	_, err = probe.MethodByName("apks.list")
	assert.Error(t, err)
}

func TestFind_CancelledContext(t *testing.T) {
	srv := playtest.New(t, map[string]*playtest.Package{"com.example.app": {}})
	p, _ := newProber(t, srv)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := p.FindFirst(ctx, []string{"com.example.app"})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = p.FindAll(ctx, []string{"com.example.app"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, srv.Calls())
}

func TestCheckAccess(t *testing.T) {
	srv := playtest.New(t, map[string]*playtest.Package{
		"com.example.app":    {},
		"com.example.locked": {Status: http.StatusForbidden},
	})

	t.Run("accessible", func(t *testing.T) {
		p, out := newProber(t, srv)
		outcome, err := p.CheckAccess(context.Background(), "com.example.app")
		require.NoError(t, err)
		assert.Equal(t, probe.FoundAccessible, outcome)
		assert.Equal(t,
			[]string{playtest.MethodInsertEdit, playtest.MethodGetEdit, playtest.MethodDeleteEdit},
			callMethods(srv.Calls(), "com.example.app"))
		assert.Contains(t, out.String(), "✅ Service account has access to the app!\n")
	})

	t.Run("not found", func(t *testing.T) {
		p, out := newProber(t, srv)
		outcome, err := p.CheckAccess(context.Background(), "com.example.missing")
		require.NoError(t, err)
		assert.Equal(t, probe.NotFound, outcome)
		assert.Contains(t, out.String(), "App with package name 'com.example.missing' not found.")
	})

	t.Run("forbidden", func(t *testing.T) {
		p, out := newProber(t, srv)
		outcome, err := p.CheckAccess(context.Background(), "com.example.locked")
		require.NoError(t, err)
		assert.Equal(t, probe.Forbidden, outcome)
		assert.Contains(t, out.String(), "5. Enter: "+email+"\n")
	})
}
