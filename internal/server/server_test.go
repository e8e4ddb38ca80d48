package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nishanthcgit/haystack-website/internal/outline"
)

type fakeStars struct {
	n  int
	ok bool
}

func (f fakeStars) Load(context.Context) (int, bool) { return f.n, f.ok }

type fakeOutliner map[string][]outline.Heading

func (f fakeOutliner) Outline(page string) ([]outline.Heading, error) {
	h, ok := f[page]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", page, fs.ErrNotExist)
	}
	return h, nil
}

func newTestServer(t *testing.T, opts ...Option) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>Home</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}
	return New(Config{SiteDir: dir}, opts...), dir
}

func get(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	srv, _ := newTestServer(t)
	w := get(t, srv, "/healthz")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := New(Config{AllowAll: true})

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestStaticFiles(t *testing.T) {
	srv, _ := newTestServer(t)
	w := get(t, srv, "/index.html")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "<h1>Home</h1>") {
		t.Errorf("GET /index.html = %d %q", w.Code, w.Body.String())
	}
}

func TestStars(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want string
	}{
		{"known", []Option{WithStars(fakeStars{n: 788, ok: true})}, `{"stars":788}`},
		{"unknown", []Option{WithStars(fakeStars{})}, `{"stars":null}`},
		{"not configured", nil, `{"stars":null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, tt.opts...)
			w := get(t, srv, "/api/stars")
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d", w.Code)
			}
			if got := strings.TrimSpace(w.Body.String()); got != tt.want {
				t.Errorf("body = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestOutline(t *testing.T) {
	srv, _ := newTestServer(t, WithOutliner(fakeOutliner{
		"usage/pipelines.md": {
			{Value: "Nodes", Depth: 2},
			{Value: "Custom nodes", Depth: 3},
			{Value: "FAQ", Depth: 2},
		},
		"empty.md": nil,
	}))

	w := get(t, srv, "/api/outline?page=usage/pipelines.md")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var resp outlineResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 3 || len(resp.Outline) != 2 || len(resp.Outline[0].Children) != 1 {
		t.Errorf("outline = %+v", resp)
	}

	w = get(t, srv, "/api/outline?page=empty.md")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"outline":[]`) {
		t.Errorf("empty page = %d %s", w.Code, w.Body.String())
	}
}

func TestOutlineErrors(t *testing.T) {
	srv, _ := newTestServer(t, WithOutliner(fakeOutliner{}))
	if w := get(t, srv, "/api/outline"); w.Code != http.StatusBadRequest {
		t.Errorf("missing page: status = %d, want 400", w.Code)
	}
	if w := get(t, srv, "/api/outline?page=missing.md"); w.Code != http.StatusNotFound {
		t.Errorf("unknown page: status = %d, want 404", w.Code)
	}

	bare, _ := newTestServer(t)
	if w := get(t, bare, "/api/outline?page=index.md"); w.Code != http.StatusNotFound {
		t.Errorf("no outliner: status = %d, want 404", w.Code)
	}
}

func TestPages(t *testing.T) {
	srv, dir := newTestServer(t)
	if w := get(t, srv, "/api/pages"); w.Code != http.StatusNotFound {
		t.Errorf("unbuilt site: status = %d, want 404", w.Code)
	}

	manifest := `{"build_id":"b1","pages":[{"source":"index.md","output":"index.html","title":"Home","kind":"markdown","headings":[]}]}`
	if err := os.WriteFile(filepath.Join(dir, "build.json"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	w := get(t, srv, "/api/pages")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"build_id":"b1"`) || !strings.Contains(w.Body.String(), `"title":"Home"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestLiveReload(t *testing.T) {
	hub := NewHub(nil)
	srv, _ := newTestServer(t, WithReloadHub(hub))

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/livereload"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	defer conn.Close()
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}

	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.Clients() != 1 {
		t.Fatalf("clients = %d, want 1", hub.Clients())
	}

	hub.Broadcast()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(msg) != reloadMessage {
		t.Errorf("message = %q, want %q", msg, reloadMessage)
	}

	hub.Close()
	if hub.Clients() != 0 {
		t.Errorf("clients after Close = %d, want 0", hub.Clients())
	}
}

// settle waits for trailing events of one change to be rebuilt and drops
// their signals.
func settle(rebuilt chan struct{}) {
	time.Sleep(150 * time.Millisecond)
	for {
		select {
		case <-rebuilt:
		default:
			return
		}
	}
}

func TestWatcherRebuildsOnChange(t *testing.T) {
	dir := t.TempDir()
	var builds atomic.Int32
	rebuilt := make(chan struct{}, 10)

	w, err := NewWatcher(dir, func(context.Context) error {
		builds.Add(1)
		rebuilt <- struct{}{}
		return nil
	}, 20*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	if err := os.WriteFile(filepath.Join(dir, "index.md"), []byte("# Home"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-rebuilt:
	case <-time.After(3 * time.Second):
		t.Fatal("no rebuild after a file change")
	}
	settle(rebuilt)

	// A new directory is watched too.
	sub := filepath.Join(dir, "usage")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	select {
	case <-rebuilt:
	case <-time.After(3 * time.Second):
		t.Fatal("no rebuild after creating a directory")
	}
	settle(rebuilt)
	if err := os.WriteFile(filepath.Join(sub, "pipelines.md"), []byte("# Pipelines"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-rebuilt:
	case <-time.After(3 * time.Second):
		t.Fatal("no rebuild after a change in a new directory")
	}

	cancel()
	if err := <-done; err != context.Canceled {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
	if builds.Load() < 3 {
		t.Errorf("builds = %d, want at least 3", builds.Load())
	}
}
