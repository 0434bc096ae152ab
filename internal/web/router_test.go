package web

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samin124/portfolio/internal/auth"
	"github.com/samin124/portfolio/internal/contact"
	"github.com/samin124/portfolio/internal/logger"
	"github.com/samin124/portfolio/internal/mail"
	"github.com/samin124/portfolio/internal/store"
)

type recordingTracker struct {
	mu    sync.Mutex
	paths []string
}

func (r *recordingTracker) Track(_, _, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(name), 0o755))
	require.NoError(t, os.WriteFile(name, []byte(content), 0o644))
}

func siteRouter(t *testing.T, production bool, tracker VisitTracker) *testEnv {
	t.Helper()
	root := t.TempDir()
	public := filepath.Join(root, "public")
	dist := filepath.Join(root, "dist")
	writeFile(t, filepath.Join(public, "index.html"), "public index")
	writeFile(t, filepath.Join(public, "assets", "resume.pdf"), "pdf bytes")
	writeFile(t, filepath.Join(dist, "index.html"), "spa shell")
	writeFile(t, filepath.Join(dist, "app.js"), "console.log(1)")
	writeFile(t, filepath.Join(root, "secret.txt"), "do not serve")

	d := Deps{
		Store:      store.NewFileStore(filepath.Join(root, "data", "portfolio.json")),
		Auth:       auth.NewIssuer(auth.Credentials{Username: adminUser, Password: adminPass}, tokenSecret),
		Verifier:   auth.NewVerifier(tokenSecret),
		Contact:    contact.NewRelay(mail.Unconfigured{}, "owner@example.com"),
		PublicDir:  public,
		DistDir:    dist,
		Production: production,
		Visits:     tracker,
	}
	return &testEnv{router: NewRouter(d)}
}

func TestRouter_StaticFiles(t *testing.T) {
	testCases := []struct {
		name       string
		production bool
		target     string
		wantCode   int
		wantBody   string
	}{
		{name: "public root", target: "/", wantCode: http.StatusOK, wantBody: "public index"},
		{name: "asset", target: "/assets/resume.pdf", wantCode: http.StatusOK, wantBody: "pdf bytes"},
		{name: "traversal stays inside", target: "/../secret.txt", wantCode: http.StatusNotFound},
		{name: "dist hidden in development", target: "/app.js", wantCode: http.StatusNotFound},
		{name: "dist in production", production: true, target: "/app.js", wantCode: http.StatusOK, wantBody: "console.log(1)"},
		{name: "spa fallback", production: true, target: "/admin", wantCode: http.StatusOK, wantBody: "spa shell"},
		{name: "no fallback in development", target: "/admin", wantCode: http.StatusNotFound},
		{name: "unknown api path is not the spa", production: true, target: "/api/nope", wantCode: http.StatusNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := siteRouter(t, tc.production, nil)
			resp := env.do(t, http.MethodGet, tc.target, "", "")
			assert.Equal(t, tc.wantCode, resp.Code)
			if tc.wantBody != "" {
				assert.Equal(t, tc.wantBody, resp.Body.String())
			}
		})
	}
}

func TestRouter_TracksPageViews(t *testing.T) {
	tracker := &recordingTracker{}
	env := siteRouter(t, true, tracker)

	env.do(t, http.MethodGet, "/", "", "")
	env.do(t, http.MethodGet, "/projects", "", "")
	env.do(t, http.MethodGet, "/api/portfolio", "", "")
	env.do(t, http.MethodGet, "/assets/resume.pdf", "", "")
	env.do(t, http.MethodGet, "/admin", "", "")
	env.do(t, http.MethodGet, "/metrics", "", "")

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("DNT", "1")
	env.router.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, []string{"/", "/projects"}, tracker.paths)
}

func TestRouter_RequestID(t *testing.T) {
	env := siteRouter(t, false, nil)

	resp := env.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Len(t, resp.Header().Get(requestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestRouter_Metrics(t *testing.T) {
	env := siteRouter(t, false, nil)
	env.do(t, http.MethodGet, "/api/portfolio", "", "")
	env.do(t, http.MethodPost, "/api/admin/login", "", `{"email":"x","password":"y"}`)

	resp := env.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.Contains(t, body, `http_requests_total{method="GET",path="/api/portfolio",status_code="200"} 1`)
	assert.Contains(t, body, `portfolio_admin_logins_total{result="rejected"} 1`)
}

func TestRouter_CORS(t *testing.T) {
	env := siteRouter(t, false, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	env := siteRouter(t, false, nil)
	srv := NewServer(ln.Addr().String(), env.router, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + ln.Addr().String() + "/healthz")
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
