package web

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/text/language"

	"biblecal/internal/bundle"
	"biblecal/internal/calendar"
	"biblecal/internal/capture"
	"biblecal/internal/config"
	"biblecal/internal/ics"
	appLog "biblecal/internal/log"
	"biblecal/internal/plan"
	"biblecal/internal/render"
)

const (
	cacheImages = "public, max-age=3600"
	cachePDF    = "public, max-age=0"
)

// Server renders calendars, feeds and bundles over HTTP. Every request
// builds its own config from the server defaults and the query string.
type Server struct {
	mu     sync.RWMutex
	cfg    *config.Config
	loader *plan.Loader

	mux   *http.ServeMux
	cache *responseCache

	// browser is set by Run when the chromium PNG backend is configured.
	browser *capture.Browser

	now func() time.Time
}

// NewServer constructs a new Server.
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		cfg:    cfg,
		loader: plan.NewLoader(cfg.PlansPath, cfg.PlansCacheDir),
		mux:    http.NewServeMux(),
		cache:  newResponseCache(responseTTL),
		now:    time.Now,
	}
	s.registerRoutes()
	return s
}

// SetConfig swaps the defaults, e.g. after the config file changed.
// Cached responses are dropped.
func (s *Server) SetConfig(cfg *config.Config) {
	s.mu.Lock()
	s.cfg = cfg
	s.loader = plan.NewLoader(cfg.PlansPath, cfg.PlansCacheDir)
	s.mu.Unlock()
	s.cache.clear()
}

func (s *Server) snapshot() (*config.Config, *plan.Loader) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg, s.loader
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	if cfg, _ := s.snapshot(); basicAuthEnabled(cfg) {
		appLog.Info("HTTP basic auth enabled", "listen", "http://"+cfg.Listen)
	}
	return s.basicAuthMiddleware(s.mux)
}

func basicAuthEnabled(cfg *config.Config) bool {
	if cfg == nil || cfg.BasicAuth == nil {
		return false
	}
	// Empty credentials disable auth.
	return cfg.BasicAuth.Username != "" && cfg.BasicAuth.Password != ""
}

// basicAuthMiddleware wraps all handlers except /health with HTTP Basic Auth.
// Credentials are read per request so a reloaded config applies at once.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		cfg, _ := s.snapshot()
		if !basicAuthEnabled(cfg) {
			next.ServeHTTP(w, r)
			return
		}
		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, cfg.BasicAuth.Username) || !secureCompare(p, cfg.BasicAuth.Password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="BibleCal", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// Run serves on cfg.Listen until ctx is done. It also schedules the
// response cache purge and, for the chromium PNG backend, keeps one
// browser for all requests.
func (s *Server) Run(ctx context.Context) error {
	cfg, _ := s.snapshot()

	c := cron.New()
	if _, err := c.AddFunc(cfg.CachePurge, func() {
		if n := s.cache.purge(); n > 0 {
			appLog.Debug("response cache purged", "removed", n)
		}
	}); err != nil {
		return &config.ConfigurationError{Field: "cache_purge", Reason: err.Error(), Err: err}
	}
	c.Start()
	defer c.Stop()

	if cfg.PNGBackend == config.PNGBackendChromium {
		s.browser = capture.NewBrowser(ctx)
		defer s.browser.Close()
	}

	server := &http.Server{
		Addr:              cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+cfg.Listen)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	appLog.Info("stopping HTTP server")
	return server.Shutdown(shutdownCtx)
}

// StartServer builds a Server for cfg and runs it until ctx is done.
func StartServer(ctx context.Context, cfg *config.Config) error {
	return NewServer(cfg).Run(ctx)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /img.svg", s.handleMonth(config.OutputSVG))
	s.mux.HandleFunc("GET /img.png", s.handleMonth(config.OutputPNG))
	s.mux.HandleFunc("GET /img.pdf", s.handlePDF)
	s.mux.HandleFunc("GET /c.ics", s.handleICS)
	s.mux.HandleFunc("GET /bundle.zip", s.handleBundle)
	s.mux.HandleFunc("GET /api/months", s.handleMonths)
	s.mux.HandleFunc("GET /{$}", s.handleRedirect)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

var localeMatcher = language.NewMatcher([]language.Tag{language.AmericanEnglish, language.Korean})

// handleRedirect sends visitors to the localized builder UI.
func (s *Server) handleRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, localePath(r.Header.Get("Accept-Language")), http.StatusFound)
}

func localePath(acceptLanguage string) string {
	tags, _, _ := language.ParseAcceptLanguage(acceptLanguage)
	tag, _, _ := localeMatcher.Match(tags...)
	if base, _ := tag.Base(); base.String() == "ko" {
		return "/ko/"
	}
	return "/en-US/"
}

// request is one parsed calendar request.
type request struct {
	cfg    *config.Config
	run    *calendar.Run
	cursor *plan.Cursor
}

func (s *Server) prepare(r *http.Request) (*request, error) {
	base, loader := s.snapshot()
	cfg, err := buildConfig(base, r.URL.Query())
	if err != nil {
		return nil, err
	}
	run, err := calendar.NewRun(cfg)
	if err != nil {
		return nil, err
	}
	cursor, _, err := loader.Load(r.Context(), cfg)
	if err != nil {
		return nil, err
	}
	return &request{cfg: cfg, run: run, cursor: cursor}, nil
}

// serveCached answers from the response cache or builds the response with
// produce and caches it.
func (s *Server) serveCached(w http.ResponseWriter, r *http.Request, produce func(*request) (cachedResponse, error)) {
	key := r.URL.Path + "?" + r.URL.Query().Encode()
	if resp, ok := s.cache.get(key); ok {
		writeCached(w, resp)
		return
	}

	started := time.Now()
	req, err := s.prepare(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	resp, err := produce(req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.cache.put(key, resp)

	appLog.Info("calendar rendered", "path", r.URL.Path, "bytes", len(resp.body), "elapsed", time.Since(started).String())
	writeCached(w, resp)
}

func writeCached(w http.ResponseWriter, resp cachedResponse) {
	h := w.Header()
	h.Set("Content-Type", resp.contentType)
	h.Set("Cache-Control", resp.cacheControl)
	if resp.disposition != "" {
		h.Set("Content-Disposition", resp.disposition)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(resp.body)
}

// handleMonth streams one month. Without y/m or i the first month of the
// range is drawn.
func (s *Server) handleMonth(out config.OutputType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.serveCached(w, r, func(req *request) (cachedResponse, error) {
			run := req.run
			if !run.HasSelection() {
				sel := *run
				sel.Selected = run.Months()[0]
				run = &sel
			}
			pages, err := render.Draw(r.Context(), req.cfg, run, req.cursor, render.Options{Output: out, Browser: s.browser})
			if err != nil {
				return cachedResponse{}, err
			}
			return cachedResponse{body: pages[0].Data, contentType: out.ContentType(), cacheControl: cacheImages}, nil
		})
	}
}

// handlePDF streams the whole range as one multi-page PDF; y/m/i are
// ignored.
func (s *Server) handlePDF(w http.ResponseWriter, r *http.Request) {
	s.serveCached(w, r, func(req *request) (cachedResponse, error) {
		pages, err := render.Draw(r.Context(), req.cfg, req.run.WithoutSelection(), req.cursor, render.Options{Output: config.OutputPDF})
		if err != nil {
			return cachedResponse{}, err
		}
		return cachedResponse{body: pages[0].Data, contentType: config.OutputPDF.ContentType(), cacheControl: cachePDF}, nil
	})
}

func (s *Server) handleICS(w http.ResponseWriter, r *http.Request) {
	s.serveCached(w, r, func(req *request) (cachedResponse, error) {
		var buf bytes.Buffer
		if err := ics.Write(&buf, req.run, req.cursor, s.now()); err != nil {
			return cachedResponse{}, err
		}
		return cachedResponse{
			body:         buf.Bytes(),
			contentType:  "text/calendar; charset=utf-8",
			cacheControl: cacheImages,
			disposition:  `inline; filename="calendar.ics"`,
		}, nil
	})
}

func (s *Server) handleBundle(w http.ResponseWriter, r *http.Request) {
	s.serveCached(w, r, func(req *request) (cachedResponse, error) {
		var buf bytes.Buffer
		err := bundle.Write(r.Context(), &buf, req.cfg, req.run, req.cursor, bundle.Options{Browser: s.browser, Stamp: s.now()})
		if err != nil {
			return cachedResponse{}, err
		}
		return cachedResponse{
			body:         buf.Bytes(),
			contentType:  "application/zip",
			cacheControl: cachePDF,
			disposition:  `attachment; filename="calendar.zip"`,
		}, nil
	})
}

type monthSummary struct {
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	Key      string `json:"key"`
	Days     int    `json:"days"`
	PlanDays int    `json:"plan_days"`
}

type monthsResponse struct {
	Start    string         `json:"start"`
	End      string         `json:"end"`
	Language string         `json:"language"`
	Months   []monthSummary `json:"months"`
	Leftover int            `json:"leftover"`
}

// handleMonths lists the months of the range with the number of readings
// drawn on each, for the builder's page previews.
func (s *Server) handleMonths(w http.ResponseWriter, r *http.Request) {
	req, err := s.prepare(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	run := req.run.WithoutSelection()
	rec := calendar.NewRecorder()
	if err := run.Draw(req.cursor, rec); err != nil {
		s.fail(w, r, err)
		return
	}

	resp := monthsResponse{
		Start:    run.Start.Format("2006-01-02"),
		End:      run.End.AddDate(0, 0, -1).Format("2006-01-02"),
		Language: string(run.Language),
		Leftover: req.cursor.Len(),
	}
	for _, ym := range run.Months() {
		resp.Months = append(resp.Months, monthSummary{
			Year:     ym.Year,
			Month:    int(ym.Month),
			Key:      ym.Key(),
			Days:     rec.Count(calendar.OpDayNumber, ym),
			PlanDays: rec.Count(calendar.OpDayPlan, ym),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// statusFor maps request errors: bad parameters are the client's fault,
// an unknown coverage does not exist, everything else is ours.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errUnknownCoverage):
		return http.StatusNotFound
	case config.IsConfigError(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		appLog.Error("request failed", err, "path", r.URL.Path, "query", r.URL.RawQuery)
		writeError(w, status, "failed to build calendar")
		return
	}
	appLog.Debug("request rejected", "path", r.URL.Path, "status", status, "err", err.Error())
	writeError(w, status, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}
