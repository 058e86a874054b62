// Package introspect exposes a running Supervisor's state over HTTP, for
// operators debugging a stuck or slow browser session. It is opt-in: a
// chrobot program only gets this surface by constructing a Server and
// calling ListenAndServe (SPEC_FULL.md §10.5).
package introspect

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chrobotgo/chrobot/supervisor"
)

var errMissingMethod = errors.New("method is required")

// callRequest is the body of POST /call: a raw CDP method invocation issued
// on the operator's behalf, for probing a stuck session interactively.
type callRequest struct {
	Method    string          `json:"method"`
	Params    json.RawMessage `json:"params,omitempty"`
	Session   string          `json:"session,omitempty"`
	TimeoutMS int             `json:"timeoutMs,omitempty"`
}

// Server serves a small JSON API over a Supervisor's Stats and version
// info, plus an ad-hoc /call endpoint for issuing one-off CDP commands.
// Grounded on cmd/chrc/main.go's chi.NewRouter() wiring and
// writeJSON/writeError helpers, trimmed to the handful of endpoints a
// process supervisor actually needs.
type Server struct {
	sup *supervisor.Supervisor
	srv *http.Server
}

// NewServer builds a Server listening on addr. addr is the value of
// Config.IntrospectAddr; an empty Server is never started by Launch itself
// — callers wire it in explicitly.
func NewServer(sup *supervisor.Supervisor, addr string) *Server {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/stats", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, sup.Stats())
	})

	r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
		v, err := sup.GetVersion(5 * time.Second)
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	})

	r.Post("/call", func(w http.ResponseWriter, r *http.Request) {
		var req callRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if req.Method == "" {
			writeError(w, http.StatusBadRequest, errMissingMethod)
			return
		}
		session := req.Session
		if session == "" {
			session = sup.SessionDefault()
		}
		timeout := req.TimeoutMS
		if timeout <= 0 {
			timeout = 30000
		}
		result, err := sup.Call(req.Method, req.Params, session, time.Duration(timeout)*time.Millisecond)
		if err != nil {
			writeError(w, http.StatusBadGateway, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(result)
	})

	return &Server{
		sup: sup,
		srv: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// ListenAndServe blocks until the server is shut down or fails to start.
func (s *Server) ListenAndServe() error {
	err := s.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
