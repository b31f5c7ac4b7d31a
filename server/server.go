// Package server exposes the repair pipeline over HTTP for a browser front
// end: resolve fetched text, validate edited text and submit it upstream.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
	"github.com/trevorspielman/JSONCodeChallenge/repair"
)

// DefaultMaxBodyBytes limits request bodies when Options.MaxBodyBytes is 0.
const DefaultMaxBodyBytes = 4 << 20

// Upstream is the remote API the server proxies to.
type Upstream interface {
	Fetch(ctx context.Context) (string, error)
	Submit(ctx context.Context, value any) (string, error)
}

// Options configures Router.
type Options struct {
	// Upstream is optional; without it /api/fetch and /api/submit answer 503.
	Upstream     Upstream
	MaxBodyBytes int64
}

// Response is the body of every /api reply.
type Response struct {
	OK          bool     `json:"ok"`
	DisplayText string   `json:"display_text,omitempty"`
	Error       string   `json:"error,omitempty"`
	Sanitized   bool     `json:"sanitized,omitempty"`
	Passes      []string `json:"passes,omitempty"`
	// Text is the sanitizer output or the upstream reply.
	Text string `json:"text,omitempty"`
}

type handler struct {
	upstream Upstream
	maxBody  int64
}

// Router returns the HTTP routes.
func Router(opts Options) chi.Router {
	h := &handler{upstream: opts.Upstream, maxBody: opts.MaxBodyBytes}
	if h.maxBody <= 0 {
		h.maxBody = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	r.Route("/api", func(api chi.Router) {
		api.Post("/resolve", h.resolve)
		api.Post("/parse", h.parse)
		api.Post("/sanitize", h.sanitize)
		api.Get("/fetch", h.fetch)
		api.Post("/submit", h.submit)
	})
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.WithFields(log.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start),
		}).Debugf("%s %s", r.Method, r.URL.Path)
	})
}

func (h *handler) readBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, Response{Error: "request body too large"})
		} else {
			writeJSON(w, http.StatusBadRequest, Response{Error: err.Error()})
		}
		return "", false
	}
	return string(data), true
}

func fromResolution(res repair.Resolution) Response {
	return Response{
		OK:          res.Result.OK(),
		DisplayText: res.DisplayText,
		Error:       res.Result.Message(),
		Sanitized:   res.Sanitized,
		Passes:      res.Passes,
	}
}

func (h *handler) resolve(w http.ResponseWriter, r *http.Request) {
	text, ok := h.readBody(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, fromResolution(repair.Resolve(text)))
}

func (h *handler) parse(w http.ResponseWriter, r *http.Request) {
	text, ok := h.readBody(w, r)
	if !ok {
		return
	}
	res := repair.Parse(text)
	if !res.OK() {
		writeJSON(w, http.StatusOK, Response{DisplayText: text, Error: res.Message()})
		return
	}
	pretty, err := repair.Pretty(res.Value)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, Response{OK: true, DisplayText: pretty})
}

func (h *handler) sanitize(w http.ResponseWriter, r *http.Request) {
	text, ok := h.readBody(w, r)
	if !ok {
		return
	}
	out, passes := repair.SanitizeReport(text)
	writeJSON(w, http.StatusOK, Response{OK: true, Text: out, Passes: passes})
}

func (h *handler) fetch(w http.ResponseWriter, r *http.Request) {
	if h.upstream == nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{Error: "no upstream configured"})
		return
	}
	raw, err := h.upstream.Fetch(r.Context())
	if err != nil {
		log.Errorf("fetch failed: %v", err)
		writeJSON(w, http.StatusBadGateway, Response{Error: err.Error()})
		return
	}
	resp := fromResolution(repair.Resolve(raw))
	resp.Text = raw
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) submit(w http.ResponseWriter, r *http.Request) {
	if h.upstream == nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{Error: "no upstream configured"})
		return
	}
	text, ok := h.readBody(w, r)
	if !ok {
		return
	}
	res := repair.Parse(text)
	if !res.OK() {
		writeJSON(w, http.StatusUnprocessableEntity, Response{Error: "edited JSON is invalid: " + res.Message()})
		return
	}
	reply, err := h.upstream.Submit(r.Context(), res.Value)
	if err != nil {
		log.Errorf("submit failed: %v", err)
		writeJSON(w, http.StatusBadGateway, Response{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, Response{OK: true, Text: reply})
}

func writeJSON(w http.ResponseWriter, status int, v Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("failed to write response: %v", err)
	}
}

// Serve runs handler on addr until ctx is cancelled, then shuts down
// gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
