package httpserver

import (
	"net/http"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type Server struct {
	mux   *chi.Mux
	ready atomic.Bool
}

func New() *Server {
	s := &Server{mux: chi.NewRouter()}

	// All middlewares go here (before any routes are added)
	s.mux.Use(chimw.RealIP)
	s.mux.Use(chimw.RequestID)
	s.mux.Use(chimw.Recoverer)
	s.mux.Use(Metrics)
	s.mux.Use(Logger(log.Logger))
	s.mux.Use(s.readyGate)

	return s
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}

// SetReady opens or closes the readiness gate.
func (s *Server) SetReady(v bool) { s.ready.Store(v) }

func (s *Server) Ready() bool { return s.ready.Load() }
