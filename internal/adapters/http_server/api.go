package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"easybooking/internal/app"
	"easybooking/internal/domain"
)

// apiError maps service errors for the JSON surface.
func apiError(w http.ResponseWriter, op string, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "Invalid ID")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Missing/invalid fields", Detail: ve.Error()})
	default:
		log.Error().Err(err).Str("op", op).Msg("store operation failed")
		writeError(w, http.StatusInternalServerError, "Server error")
	}
}

// projected renders listings restricted to p. Without a projection the full
// records are returned.
func projected(ls []domain.Listing, p domain.Projection) any {
	if p == nil {
		return ls
	}
	out := make([]map[string]any, len(ls))
	for i, l := range ls {
		out[i] = l.Project(p)
	}
	return out
}

func (h *Handlers) apiList(w http.ResponseWriter, r *http.Request) {
	q := app.Translate(r.URL.Query())
	ls, err := h.Listings.List(r.Context(), q)
	if err != nil {
		apiError(w, "list", err)
		return
	}
	if ls == nil {
		ls = []domain.Listing{}
	}
	writeJSON(w, http.StatusOK, projected(ls, q.Projection))
}

func (h *Handlers) apiGet(w http.ResponseWriter, r *http.Request) {
	p := app.BuildProjection(r.URL.Query())
	l, err := h.Listings.Get(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		apiError(w, "get", err)
		return
	}
	if p == nil {
		writeJSON(w, http.StatusOK, l)
		return
	}
	writeJSON(w, http.StatusOK, l.Project(p))
}

func (h *Handlers) apiCreate(w http.ResponseWriter, r *http.Request) {
	in, err := listingInput(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	l, err := h.Listings.Create(r.Context(), in)
	if err != nil {
		apiError(w, "create", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"_id": l.ID})
}

func (h *Handlers) apiUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !domain.IsValidID(id) {
		apiError(w, "update", domain.ErrInvalidID)
		return
	}
	in, err := listingInput(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if _, err := h.Listings.Update(r.Context(), id, in); err != nil {
		apiError(w, "update", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Updated"})
}

func (h *Handlers) apiDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Listings.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		apiError(w, "delete", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted"})
}
