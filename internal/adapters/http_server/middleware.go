package httpserver

import (
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"easybooking/internal/adapters/observability"
	"easybooking/internal/domain"
)

// ---- status-recording ResponseWriter ----

type srw struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (w *srw) WriteHeader(code int) {
	if !w.wrote {
		w.status = code
		w.wrote = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *srw) Write(b []byte) (int, error) {
	if !w.wrote {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *srw) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// unmatchedRoute labels requests that never reached a route: unknown paths
// and requests turned away by the readiness gate. Raw paths are never used
// as labels.
const unmatchedRoute = "unmatched"

func routeOf(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return unmatchedRoute
}

// ---- Metrics middleware ----

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &srw{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		observability.ObserveHTTP(routeOf(r), r.Method, sw.Status(), time.Since(start))
	})
}

// ---- Structured logging middleware ----

func Logger(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &srw{ResponseWriter: w}
			next.ServeHTTP(sw, r)
			l.Info().
				Str("route", routeOf(r)).
				Str("path", r.URL.Path).
				Str("method", r.Method).
				Int("status", sw.Status()).
				Dur("duration", time.Since(start)).
				Str("remote", remoteIP(r)).
				Str("ua", r.UserAgent()).
				Str("request_id", chimw.GetReqID(r.Context())).
				Msg("http_request")
		})
	}
}

// Picks first X-Forwarded-For IP, else X-Real-IP, else RemoteAddr host.
func remoteIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

// ---- Readiness gate ----

// diagnosticPaths stay reachable while startup is incomplete.
var diagnosticPaths = map[string]bool{
	"/__debug": true,
	"/healthz": true,
	"/metrics": true,
}

func (s *Server) readyGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.ready.Load() || diagnosticPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("Database unavailable"))
	})
}

// ---- Session loading and auth gate ----

// loadSession resolves the sid cookie and puts the session on the context.
// A cookie that no longer resolves is cleared.
func (h *Handlers) loadSession(next http.Handler) http.Handler {
	if h.Auth == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := h.Cookies.Read(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		sess, err := h.Auth.Resolve(r.Context(), token)
		if err != nil {
			if !errors.Is(err, domain.ErrUnauthorized) {
				log.Error().Err(err).Msg("resolve session")
			}
			h.Cookies.Clear(w)
			next.ServeHTTP(w, r)
			return
		}
		h.Cookies.Write(w, sess.Token, sess.ExpiresAt)
		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), sess)))
	})
}

// requireAuth lets authenticated requests through. API paths get a 401
// JSON body, pages a redirect to /login.
func (h *Handlers) requireAuth(next http.Handler) http.Handler {
	if h.Auth == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := sessionFrom(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}
		if strings.HasPrefix(r.URL.Path, "/api") {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		http.Redirect(w, r, "/login", http.StatusFound)
	})
}

// throttleLogin rejects login attempts beyond the configured per-client rate.
func (h *Handlers) throttleLogin(next http.Handler) http.Handler {
	if h.LoginLimiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.LoginLimiter.Allow(remoteIP(r)) {
			observability.ObserveLogin("throttled")
			http.Error(w, "Too many login attempts", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
