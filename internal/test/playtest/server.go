// Package playtest serves a minimal fake of the Play Developer API edits and
// reviews resources for tests.
package playtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

const (
	MethodListEdits   = "edits.list"
	MethodInsertEdit  = "edits.insert"
	MethodGetEdit     = "edits.get"
	MethodDeleteEdit  = "edits.delete"
	MethodCommitEdit  = "edits.commit"
	MethodListReviews = "reviews.list"
	MethodToken       = "token"
)

const apiPrefix = "/androidpublisher/v3/applications/"

// Package describes how the fake answers for one package name. Unknown
// packages answer 404 on every call.
type Package struct {
	// Status, when non-zero, is returned by every call for the package.
	Status int
	// MethodStatus overrides Status for a single method.
	MethodStatus map[string]int
	// Edits are the pending edit ids returned by edits.list, in order.
	Edits []string
}

type Call struct {
	Method  string
	Package string
	EditID  string
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	packages map[string]*Package
	calls    []Call
	inserted map[string]bool
}

func New(t *testing.T, packages map[string]*Package) *Server {
	t.Helper()
	s := &Server{packages: packages, inserted: map[string]bool{}}
	if s.packages == nil {
		s.packages = map[string]*Package{}
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Endpoint is the base path to hand to the API client.
func (s *Server) Endpoint() string { return s.URL + "/" }

func (s *Server) TokenURL() string { return s.URL + "/token" }

func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// APICalls is Calls without token exchanges.
func (s *Server) APICalls() []Call {
	out := []Call{}
	for _, c := range s.Calls() {
		if c.Method != MethodToken {
			out = append(out, c)
		}
	}
	return out
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/token" {
		s.record(Call{Method: MethodToken})
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": "fake-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
		return
	}
	if !strings.HasPrefix(r.URL.Path, apiPrefix) {
		writeError(w, http.StatusNotFound, "unknown path "+r.URL.Path)
		return
	}

	method, pkg, editID := route(r.Method, strings.TrimPrefix(r.URL.Path, apiPrefix))
	s.record(Call{Method: method, Package: pkg, EditID: editID})
	if method == "" {
		writeError(w, http.StatusNotFound, "unknown method")
		return
	}

	s.mu.Lock()
	p, ok := s.packages[pkg]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Package not found: %s.", pkg))
		return
	}
	if code := p.status(method); code != 0 && code != http.StatusOK {
		writeError(w, code, fmt.Sprintf("%s failed for %s", method, pkg))
		return
	}

	switch method {
	case MethodListEdits:
		edits := []map[string]string{}
		for _, id := range p.Edits {
			edits = append(edits, map[string]string{"id": id, "expiryTimeSeconds": "1700000000"})
		}
		writeJSON(w, http.StatusOK, map[string]any{"edits": edits})
	case MethodInsertEdit:
		id := pkg + "-probe"
		s.mu.Lock()
		s.inserted[id] = true
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"id": id, "expiryTimeSeconds": "1700000000"})
	case MethodGetEdit:
		if !s.known(p, editID) {
			writeError(w, http.StatusNotFound, "edit not found: "+editID)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"id": editID, "expiryTimeSeconds": "1700000000"})
	case MethodDeleteEdit:
		w.WriteHeader(http.StatusNoContent)
	case MethodCommitEdit:
		if !s.known(p, editID) {
			writeError(w, http.StatusNotFound, "edit not found: "+editID)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"id": editID})
	case MethodListReviews:
		writeJSON(w, http.StatusOK, map[string]any{"reviews": []any{}})
	}
}

func (p *Package) status(method string) int {
	if code, ok := p.MethodStatus[method]; ok {
		return code
	}
	return p.Status
}

func (s *Server) known(p *Package, editID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inserted[editID] {
		return true
	}
	for _, id := range p.Edits {
		if id == editID {
			return true
		}
	}
	return false
}

func (s *Server) record(c Call) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, c)
}

func route(httpMethod, rest string) (method, pkg, editID string) {
	parts := strings.Split(rest, "/")
	if len(parts) < 2 {
		return "", "", ""
	}
	pkg = parts[0]
	switch {
	case len(parts) == 2 && parts[1] == "edits":
		switch httpMethod {
		case http.MethodGet:
			return MethodListEdits, pkg, ""
		case http.MethodPost:
			return MethodInsertEdit, pkg, ""
		}
	case len(parts) == 2 && parts[1] == "reviews" && httpMethod == http.MethodGet:
		return MethodListReviews, pkg, ""
	case len(parts) == 3 && parts[1] == "edits":
		editID = parts[2]
		if id, ok := strings.CutSuffix(editID, ":commit"); ok && httpMethod == http.MethodPost {
			return MethodCommitEdit, pkg, id
		}
		switch httpMethod {
		case http.MethodGet:
			return MethodGetEdit, pkg, editID
		case http.MethodDelete:
			return MethodDeleteEdit, pkg, editID
		}
	}
	return "", pkg, editID
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": msg,
			"status":  http.StatusText(code),
		},
	})
}
