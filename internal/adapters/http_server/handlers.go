package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"easybooking/internal/adapters/view"
	"easybooking/internal/app"
	"easybooking/internal/auth"
	"easybooking/internal/domain"
)

// Handlers serves both the HTML pages and the JSON API. Both go through the
// same ListingService; they differ only in how results and errors are shown.
type Handlers struct {
	Listings *app.ListingService
	// Auth is nil when authentication is switched off.
	Auth         *auth.Service
	Cookies      *SessionCookie
	Views        *view.Renderer
	PublicDir    string
	LoginLimiter *ClientLimiter
	CORSOrigins  []string
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if !s.Ready() {
			http.Error(w, "starting", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
		_, _ = w.Write([]byte("ok"))
	})
	s.mux.Get("/__debug", h.debug)

	s.mux.Group(func(r chi.Router) {
		r.Use(h.loadSession)

		r.Get("/", h.staticPage("index.html"))
		r.Get("/about", h.staticPage("about.html"))
		r.Get("/contact", h.staticPage("contact.html"))

		r.Get("/login", h.loginPage)
		r.With(h.throttleLogin).Post("/login", h.login)
		r.Post("/logout", h.logout)

		r.Get("/search", h.search)
		r.Get("/hotels", h.hotelsPage)
		r.With(h.requireAuth).Get("/hotels/new", h.staticPage("new-hotel.html"))
		r.With(h.requireAuth).Post("/hotels", h.createPage)

		r.Get("/item/{id}", h.itemPage)
		r.With(h.requireAuth).Get("/item/{id}/edit", h.editPage)
		r.With(h.requireAuth).Post("/item/{id}", h.updatePage)
		r.With(h.requireAuth).Post("/item/{id}/delete", h.deletePage)

		r.Route("/api", func(r chi.Router) {
			if len(h.CORSOrigins) > 0 {
				r.Use(cors.Handler(cors.Options{
					AllowedOrigins:   h.CORSOrigins,
					AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
					AllowedHeaders:   []string{"Content-Type"},
					AllowCredentials: true,
					MaxAge:           300,
				}))
			}
			r.Get("/hotels", h.apiList)
			r.Get("/hotels/{id}", h.apiGet)
			r.With(h.requireAuth).Post("/hotels", h.apiCreate)
			r.With(h.requireAuth).Put("/hotels/{id}", h.apiUpdate)
			r.With(h.requireAuth).Delete("/hotels/{id}", h.apiDelete)
			r.NotFound(h.notFound)
			r.MethodNotAllowed(h.notFound)
		})
	})

	s.mux.NotFound(h.notFound)
	s.mux.MethodNotAllowed(h.notFound)
}

type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("marshal JSON response failed")
		status, body = http.StatusInternalServerError, []byte(`{"error":"Server error"}`)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// listingInput reads a listing from a form post or a JSON body.
func listingInput(w http.ResponseWriter, r *http.Request) (domain.ListingInput, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body map[string]any
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil {
			return domain.ListingInput{}, err
		}
		return app.InputFromJSON(body), nil
	}
	if err := r.ParseForm(); err != nil {
		return domain.ListingInput{}, err
	}
	return app.InputFrom(r.PostForm.Get), nil
}

func isValidation(err error) bool {
	var ve *domain.ValidationError
	return errors.As(err, &ve)
}
