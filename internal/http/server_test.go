package http

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"datesheet/internal/core"
	applog "datesheet/internal/log"
	"datesheet/internal/render"
)

type fakeRenderer struct {
	mu     sync.Mutex
	calls  []time.Time
	sizes  []core.PageSize
	err    error
	output []byte
}

func (f *fakeRenderer) RenderMonth(start time.Time, size core.PageSize) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, start)
	f.sizes = append(f.sizes, size)
	if f.err != nil {
		return nil, f.err
	}
	return f.output, nil
}

func quietLogger() *applog.Logger {
	return applog.New(applog.Config{Level: slog.LevelError, Output: io.Discard})
}

func newTestServer(r Renderer, opts ...Option) *Server {
	return NewServer(":0", r, append([]Option{WithLogger(quietLogger())}, opts...)...)
}

func serve(srv *Server, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestIndexRedirectsToCurrentMonth(t *testing.T) {
	clock := func() time.Time {
		// 23:30 in UTC-5 is already March 1st in UTC.
		return time.Date(2024, time.February, 29, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))
	}
	srv := newTestServer(&fakeRenderer{}, WithClock(clock))

	rr := serve(srv, "/")
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/2024/03" {
		t.Fatalf("Location = %q, want /2024/03", loc)
	}
	if rr.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("redirect must not be cached")
	}
}

func TestIndexRedirectWithRealClock(t *testing.T) {
	srv := newTestServer(&fakeRenderer{})
	rr := serve(srv, "/")
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rr.Code)
	}
	if !regexp.MustCompile(`^/\d{4}/\d{2}$`).MatchString(rr.Header().Get("Location")) {
		t.Fatalf("Location = %q", rr.Header().Get("Location"))
	}
}

func TestDatesheetSuccess(t *testing.T) {
	fake := &fakeRenderer{output: []byte("%PDF-fake")}
	srv := newTestServer(fake)

	rr := serve(srv, "/2023/1")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("Content-Type = %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); cd != `filename="datesheet-2023-01.pdf"` {
		t.Fatalf("Content-Disposition = %q", cd)
	}
	if rr.Body.String() != "%PDF-fake" {
		t.Fatalf("body = %q", rr.Body.String())
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing request id header")
	}
	if len(fake.calls) != 1 || !fake.calls[0].Equal(time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("renderer calls = %v", fake.calls)
	}
	if fake.sizes[0] != core.A4Landscape {
		t.Fatalf("page size = %+v", fake.sizes[0])
	}
}

func TestDatesheetErrors(t *testing.T) {
	cases := []struct {
		name     string
		path     string
		renderer *fakeRenderer
		contains string
	}{
		{"month too large", "/2023/13", &fakeRenderer{}, "invalid month"},
		{"month zero", "/2023/00", &fakeRenderer{}, "invalid month"},
		{"non-numeric month", "/2023/jan", &fakeRenderer{}, `invalid month "jan"`},
		{"non-numeric year", "/twenty/01", &fakeRenderer{}, `invalid year "twenty"`},
		{"render failure", "/2023/01", &fakeRenderer{err: errors.New("boom")}, "boom"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(tc.renderer)
			rr := serve(srv, tc.path)
			if rr.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want 500", rr.Code)
			}
			if !strings.HasPrefix(rr.Header().Get("Content-Type"), "text/plain") {
				t.Fatalf("Content-Type = %q", rr.Header().Get("Content-Type"))
			}
			body := rr.Body.String()
			if !strings.HasPrefix(body, "error: ") || !strings.Contains(body, tc.contains) {
				t.Fatalf("body = %q, want error containing %q", body, tc.contains)
			}
		})
	}
}

func TestInvalidMonthNeverReachesRenderer(t *testing.T) {
	fake := &fakeRenderer{}
	srv := newTestServer(fake)
	serve(srv, "/2023/13")
	if len(fake.calls) != 0 {
		t.Fatalf("renderer called for invalid month: %v", fake.calls)
	}
}

func TestHealthAndUnknownRoutes(t *testing.T) {
	srv := newTestServer(&fakeRenderer{})
	for path, want := range map[string]string{"/healthz": "ok", "/readyz": "ready"} {
		rr := serve(srv, path)
		if rr.Code != http.StatusOK || rr.Body.String() != want {
			t.Fatalf("%s: status=%d body=%q", path, rr.Code, rr.Body.String())
		}
	}
	if rr := serve(srv, "/2023/01/02"); rr.Code != http.StatusNotFound {
		t.Fatalf("unknown route status = %d, want 404", rr.Code)
	}

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/2023/01", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST status = %d, want 405", rr.Code)
	}
}

func TestSecurityHeadersApplied(t *testing.T) {
	srv := newTestServer(&fakeRenderer{output: []byte("%PDF")})
	rr := serve(srv, "/2023/01")
	if rr.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("missing nosniff header")
	}
}

func TestMetricsCountRequests(t *testing.T) {
	srv := newTestServer(&fakeRenderer{output: []byte("%PDF")})
	serve(srv, "/2023/01")
	serve(srv, "/2023/13")
	m := srv.Metrics()
	if m.TotalRequests != 2 || m.FailedRequests != 1 {
		t.Fatalf("metrics = %+v", m)
	}
}

func TestConcurrentMonthsWithRealRenderer(t *testing.T) {
	r, err := render.New(render.DefaultFont())
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	srv := newTestServer(r)

	paths := []string{"/2023/01", "/2023/02", "/2024/02", "/2023/06"}
	bodies := make([][]byte, len(paths))
	codes := make([]int, len(paths))

	var wg sync.WaitGroup
	for i, p := range paths {
		wg.Add(1)
		go func(i int, p string) {
			defer wg.Done()
			rr := serve(srv, p)
			codes[i] = rr.Code
			bodies[i] = rr.Body.Bytes()
		}(i, p)
	}
	wg.Wait()

	for i, p := range paths {
		if codes[i] != http.StatusOK {
			t.Fatalf("%s: status %d", p, codes[i])
		}
		if !bytes.HasPrefix(bodies[i], []byte("%PDF-")) {
			t.Fatalf("%s: body is not a PDF", p)
		}
		title := "datesheet " + strings.ReplaceAll(strings.TrimPrefix(p, "/"), "/", "-")
		if !bytes.Contains(bodies[i], []byte(title)) {
			t.Fatalf("%s: body does not carry title %q", p, title)
		}
		for j := range paths {
			if j != i && bytes.Equal(bodies[i], bodies[j]) {
				t.Fatalf("%s and %s produced identical documents", p, paths[j])
			}
		}
	}
}
