package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"

	"github.com/hpungsan/shareline/internal/casestudy"
	"github.com/hpungsan/shareline/internal/packet"
	"github.com/hpungsan/shareline/internal/resolver"
)

type stubSource struct {
	all       []casestudy.CaseStudyRef
	allErr    error
	listCalls atomic.Int64
}

func (s *stubSource) ListAllProjects(ctx context.Context) ([]casestudy.CaseStudyRef, error) {
	s.listCalls.Add(1)
	return s.all, s.allErr
}

func (s *stubSource) GetProjectBySlug(ctx context.Context, slug string) (*casestudy.CaseStudyRef, error) {
	for _, ref := range s.all {
		if ref.Slug == slug {
			return &ref, nil
		}
	}
	return nil, nil
}

func newTestServer(t *testing.T, source resolver.Source) *httptest.Server {
	t.Helper()

	templateSub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		t.Fatalf("template sub-FS: %v", err)
	}

	h := &Handlers{
		resolver: resolver.New(source, resolver.WithFallback(resolver.DefaultFallbackCatalog())),
		source:   source,
		renderer: NewRenderer(templateSub, "test"),
		log:      zap.NewNop(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.HandleIndex)
	mux.HandleFunc("GET /share/{slugs}", h.HandleShare)
	mux.HandleFunc("GET /api/share/{slugs}", h.HandleShareAPI)
	mux.HandleFunc("GET /healthz", h.HandleHealth)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestHandleShare_RendersMatches(t *testing.T) {
	source := &stubSource{all: []casestudy.CaseStudyRef{
		{ID: "1", Title: "Learn XYZ", Slug: "learn-xyz", Summary: "An adaptive platform."},
	}}
	srv := newTestServer(t, source)

	status, body := get(t, srv.URL+"/share/learn-xyz?for=Acme+Corp&note=enjoy")

	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if !strings.Contains(body, "Learn XYZ") {
		t.Error("body should contain the matched title")
	}
	if !strings.Contains(body, "Case studies for Acme Corp") {
		t.Error("body should contain the company heading")
	}
	if !strings.Contains(body, "enjoy") {
		t.Error("body should contain the rendered note")
	}
}

func TestHandleShare_EmptyIsFirstClassAndStill200(t *testing.T) {
	source := &stubSource{allErr: errors.New("cms down")}
	srv := newTestServer(t, source)

	status, body := get(t, srv.URL+"/share/never-existed")

	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200 even when nothing resolves", status)
	}
	if !strings.Contains(body, "No matching case studies found") {
		t.Error("body should render the explicit empty state")
	}
}

func TestHandleShare_ResolvesOncePerRequest(t *testing.T) {
	source := &stubSource{all: []casestudy.CaseStudyRef{
		{ID: "1", Title: "Learn XYZ", Slug: "learn-xyz"},
	}}
	srv := newTestServer(t, source)

	// Metadata and body both need the packet within this one request.
	status, _ := get(t, srv.URL+"/share/learn-xyz")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if got := source.listCalls.Load(); got != 1 {
		t.Errorf("upstream bulk calls = %d, want exactly 1 per request", got)
	}
}

func TestHandleShareAPI_InlineFallback(t *testing.T) {
	source := &stubSource{allErr: errors.New("cms down")}
	srv := newTestServer(t, source)

	blob := packet.Encode([]casestudy.CaseStudyRef{
		{Title: "Gone Project", Slug: "gone-project", Summary: "s", Tags: []string{"t"}},
	})

	status, body := get(t, srv.URL+"/api/share/gone-project?d="+blob)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}

	var out struct {
		Slugs    []string                 `json:"slugs"`
		Projects []casestudy.CaseStudyRef `json:"projects"`
	}
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out.Projects) != 1 || out.Projects[0].Title != "Gone Project" {
		t.Errorf("projects = %+v, want the inline payload item", out.Projects)
	}
}

func TestHandleIndex(t *testing.T) {
	source := &stubSource{all: []casestudy.CaseStudyRef{
		{ID: "1", Title: "Learn XYZ", Slug: "learn-xyz", Summary: "s"},
	}}
	srv := newTestServer(t, source)

	status, body := get(t, srv.URL+"/")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if !strings.Contains(body, "learn-xyz") {
		t.Error("index should list catalog slugs")
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, &stubSource{})

	status, body := get(t, srv.URL+"/healthz")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if !strings.Contains(body, `"ok"`) {
		t.Errorf("body = %s", body)
	}
}
