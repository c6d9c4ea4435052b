package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblecal/internal/config"
	"biblecal/internal/plan"
)

const wholeBibleQuery = "c=whole-bible&r=sunday&o=old-testament-first&s=20240101"

// writePlans creates the plan files the query needs under dir.
func writePlans(t *testing.T, base *config.Config, query string) {
	t.Helper()
	q, err := url.ParseQuery(query)
	require.NoError(t, err)
	cfg, err := buildConfig(base, q)
	require.NoError(t, err)
	files, err := plan.Files(cfg)
	require.NoError(t, err)

	for _, f := range files {
		var sb strings.Builder
		for i := 1; i <= f.ActiveDays; i++ {
			fmt.Fprintf(&sb, "%d,Proverbs,%d,,,,\n", i, i%31+1)
		}
		require.NoError(t, os.WriteFile(filepath.Join(base.PlansPath, f.Name), []byte(sb.String()), 0o600))
	}
}

func newTestServer(t *testing.T) (*Server, *config.Config) {
	t.Helper()
	cfg := baseConfig()
	cfg.PlansPath = t.TempDir()
	writePlans(t, cfg, wholeBibleQuery)
	return NewServer(cfg), cfg
}

func get(t *testing.T, h http.Handler, target string, mutate func(r *http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s.Handler(), "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestBasicAuth(t *testing.T) {
	s, cfg := newTestServer(t)
	auth := cfg.Clone()
	auth.BasicAuth = &config.BasicAuthConfig{Username: "reader", Password: "psalm23"}
	s.SetConfig(auth)
	h := s.Handler()

	assert.Equal(t, http.StatusOK, get(t, h, "/health", nil).Code)

	rec := get(t, h, "/img.svg?"+wholeBibleQuery, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Basic")

	rec = get(t, h, "/img.svg?"+wholeBibleQuery, func(r *http.Request) { r.SetBasicAuth("reader", "wrong") })
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = get(t, h, "/img.svg?"+wholeBibleQuery, func(r *http.Request) { r.SetBasicAuth("reader", "psalm23") })
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLocaleRedirect(t *testing.T) {
	tests := []struct {
		accept string
		want   string
	}{
		{"ko-KR,ko;q=0.9,en-US;q=0.8", "/ko/"},
		{"ko", "/ko/"},
		{"en-US,en;q=0.9", "/en-US/"},
		{"fr-FR", "/en-US/"},
		{"", "/en-US/"},
	}
	s, _ := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.accept, func(t *testing.T) {
			rec := get(t, s.Handler(), "/", func(r *http.Request) { r.Header.Set("Accept-Language", tt.accept) })
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tt.want, rec.Header().Get("Location"))
		})
	}
}

func TestSVGMonthIsCached(t *testing.T) {
	s, cfg := newTestServer(t)
	target := "/img.svg?" + wholeBibleQuery + "&y=2024&m=3"

	rec := get(t, s.Handler(), target, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Body.String(), ">March</text>")
	assert.Equal(t, 1, s.cache.count())

	// A cached response no longer needs the plan files.
	require.NoError(t, os.RemoveAll(cfg.PlansPath))
	again := get(t, s.Handler(), target, nil)
	require.Equal(t, http.StatusOK, again.Code)
	assert.Equal(t, rec.Body.String(), again.Body.String())
}

func TestSVGDefaultsToFirstMonth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s.Handler(), "/img.svg?"+wholeBibleQuery, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ">January</text>")
}

func TestPNGMonth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s.Handler(), "/img.png?"+wholeBibleQuery+"&i=5", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "\x89PNG"))
}

func TestPDFRange(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s.Handler(), "/img.pdf?"+wholeBibleQuery+"&i=4", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=0", rec.Header().Get("Cache-Control"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))
}

func TestICSFeed(t *testing.T) {
	s, _ := newTestServer(t)
	s.now = func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) }

	rec := get(t, s.Handler(), "/c.ics?"+wholeBibleQuery, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Equal(t, 314, strings.Count(body, "BEGIN:VEVENT"))
	assert.Contains(t, body, "DTSTAMP:20240101T120000Z")
	assert.Contains(t, body, "SUMMARY:Prov 2")
}

func TestBundleZip(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s.Handler(), "/bundle.zip?"+wholeBibleQuery, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "calendar.zip")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "PK"))
}

func TestMonthsAPI(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s.Handler(), "/api/months?"+wholeBibleQuery, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp monthsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2024-01-01", resp.Start)
	assert.Equal(t, "2024-12-31", resp.End)
	assert.Equal(t, 0, resp.Leftover)
	require.Len(t, resp.Months, 12)

	march := resp.Months[2]
	assert.Equal(t, "2024-03", march.Key)
	assert.Equal(t, 31, march.Days)
	assert.Equal(t, 26, march.PlanDays)

	total := 0
	for _, m := range resp.Months {
		total += m.PlanDays
	}
	assert.Equal(t, 314, total)
}

func TestErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		target string
		status int
	}{
		{"unknown coverage", "/img.svg?c=apocrypha", http.StatusNotFound},
		{"bad rest day", "/img.svg?c=whole-bible&r=funday", http.StatusBadRequest},
		{"month outside range", "/img.svg?" + wholeBibleQuery + "&y=2030&m=1", http.StatusBadRequest},
		{"missing plan file", "/img.svg?c=whole-bible&r=monday&s=20240101", http.StatusInternalServerError},
		{"months api unknown coverage", "/api/months?c=", http.StatusNotFound},
	}
	s, _ := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s.Handler(), tt.target, nil)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
	assert.Equal(t, 0, s.cache.count(), "errors are not cached")
}

func TestResponseCachePurge(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := newResponseCache(time.Minute)
	c.now = func() time.Time { return now }

	c.put("a", cachedResponse{body: []byte("a")})
	now = now.Add(30 * time.Second)
	c.put("b", cachedResponse{body: []byte("b")})

	_, ok := c.get("a")
	assert.True(t, ok)

	now = now.Add(45 * time.Second)
	_, ok = c.get("a")
	assert.False(t, ok, "expired")
	assert.Equal(t, 1, c.purge())
	assert.Equal(t, 1, c.count())

	c.clear()
	assert.Equal(t, 0, c.count())
}

func TestSetConfigDropsCache(t *testing.T) {
	s, cfg := newTestServer(t)
	require.Equal(t, http.StatusOK, get(t, s.Handler(), "/img.svg?"+wholeBibleQuery, nil).Code)
	require.Equal(t, 1, s.cache.count())

	s.SetConfig(cfg.Clone())
	assert.Equal(t, 0, s.cache.count())
}
