package httpserver

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"easybooking/internal/adapters/observability"
	"easybooking/internal/adapters/view"
	"easybooking/internal/app"
	"easybooking/internal/domain"
)

func (h *Handlers) render(w http.ResponseWriter, status int, name string, vals view.Values) {
	out, err := h.Views.Render(name, vals)
	if err != nil {
		log.Error().Err(err).Str("view", name).Msg("render view")
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(out))
}

func (h *Handlers) staticPage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, http.StatusOK, name, nil)
	}
}

// pageError maps service errors for the HTML surface.
func (h *Handlers) pageError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		h.render(w, http.StatusBadRequest, "404.html", nil)
	case errors.Is(err, domain.ErrNotFound):
		h.render(w, http.StatusNotFound, "404.html", nil)
	case isValidation(err):
		log.Debug().Err(err).Str("op", op).Msg("rejected listing")
		http.Error(w, "Invalid data", http.StatusBadRequest)
	default:
		log.Error().Err(err).Str("op", op).Msg("store operation failed")
		http.Error(w, "Server error", http.StatusInternalServerError)
	}
}

func (h *Handlers) loginPage(w http.ResponseWriter, r *http.Request) {
	if h.Auth == nil {
		http.Redirect(w, r, "/hotels", http.StatusFound)
		return
	}
	if _, ok := sessionFrom(r.Context()); ok {
		http.Redirect(w, r, "/hotels", http.StatusFound)
		return
	}
	h.render(w, http.StatusOK, "login.html", nil)
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	if h.Auth == nil {
		http.Redirect(w, r, "/hotels", http.StatusFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid credentials", http.StatusBadRequest)
		return
	}
	username, password := r.PostForm.Get("username"), r.PostForm.Get("password")
	if username == "" || password == "" {
		observability.ObserveLogin("invalid")
		http.Error(w, "Invalid credentials", http.StatusBadRequest)
		return
	}

	sess, err := h.Auth.Login(r.Context(), username, password)
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		observability.ObserveLogin("invalid")
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	case err != nil:
		observability.ObserveLogin("error")
		log.Error().Err(err).Msg("login failed")
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	observability.ObserveLogin("ok")
	log.Info().Str("user", sess.Username).Msg("login")
	h.Cookies.Write(w, sess.Token, sess.ExpiresAt)
	http.Redirect(w, r, "/hotels", http.StatusFound)
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	if h.Auth == nil {
		http.Redirect(w, r, "/hotels", http.StatusFound)
		return
	}
	if sess, ok := sessionFrom(r.Context()); ok {
		if err := h.Auth.Logout(r.Context(), sess.Token); err != nil {
			log.Error().Err(err).Msg("logout")
		}
	}
	h.Cookies.Clear(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	http.Redirect(w, r, "/hotels?q="+url.QueryEscape(q), http.StatusFound)
}

var sortChoices = []struct{ value, label string }{
	{"", "Default"},
	{"price_asc", "Price ↑"},
	{"price_desc", "Price ↓"},
	{"title_asc", "Title A→Z"},
	{"title_desc", "Title Z→A"},
}

// listParams are echoed back into the form and the API link, in this order.
var listParams = []string{"q", "city", "minPrice", "maxPrice", "sort", "fields"}

func (h *Handlers) hotelsPage(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := app.Translate(params)

	hotels, err := h.Listings.List(r.Context(), query)
	if err != nil {
		h.pageError(w, "list", err)
		return
	}
	cities, err := h.Listings.Cities(r.Context())
	if err != nil {
		h.pageError(w, "cities", err)
		return
	}

	city, sortBy := params.Get("city"), params.Get("sort")

	var opts strings.Builder
	opts.WriteString(`<option value="">All</option>`)
	for _, c := range cities {
		opts.WriteString(option(c, c, c == city))
	}
	var sorts strings.Builder
	for _, o := range sortChoices {
		sorts.WriteString(option(o.value, o.label, o.value == sortBy))
	}

	qs := make([]string, len(listParams))
	for i, k := range listParams {
		qs[i] = url.QueryEscape(k) + "=" + url.QueryEscape(params.Get(k))
	}

	h.render(w, http.StatusOK, "hotels.html", view.Values{
		"q":           params.Get("q"),
		"cityOptions": view.HTML(opts.String()),
		"minPrice":    params.Get("minPrice"),
		"maxPrice":    params.Get("maxPrice"),
		"sortOptions": view.HTML(sorts.String()),
		"sort":        sortBy,
		"fields":      params.Get("fields"),
		"apiUrl":      "/api/hotels?" + strings.Join(qs, "&"),
		"results":     view.HTML(h.authInfo(r) + resultCards(hotels, query.Projection)),
	})
}

func option(value, label string, selected bool) string {
	sel := ""
	if selected {
		sel = " selected"
	}
	return `<option value="` + view.Escape(value) + `"` + sel + `>` + view.Escape(label) + `</option>`
}

func (h *Handlers) authInfo(r *http.Request) string {
	if h.Auth == nil {
		return ""
	}
	if sess, ok := sessionFrom(r.Context()); ok {
		return `<form method="POST" action="/logout" style="margin: 0 0 20px 0;">` +
			`<button class="btn btn-outline" type="submit">Logout (` + view.Escape(sess.Username) + `)</button>` +
			`</form>`
	}
	return `<a class="btn" href="/login">Login</a>`
}

// resultCards renders one card per listing. Fields left out by the
// projection print empty.
func resultCards(hotels []domain.Listing, p domain.Projection) string {
	if len(hotels) == 0 {
		return `<div class="feature-card"><h3>No hotels found</h3></div>`
	}
	var b strings.Builder
	for _, l := range hotels {
		f := l.Project(p)
		v := func(k string) string { return cardValue(f[k]) }
		id := view.Escape(l.ID)
		b.WriteString(`
      <div class="feature-card">
        <h3>` + v(domain.FieldTitle) + `</h3>
        <p>` + v(domain.FieldDescription) + `</p>
        <p>
          <strong>City:</strong> ` + v(domain.FieldLocation) + `<br/>
          <strong>Price:</strong> ` + v(domain.FieldPrice) + ` ₸<br/>
          <strong>Stars:</strong> ` + v(domain.FieldStars) + `<br/>
          <strong>Rooms:</strong> ` + v(domain.FieldRooms) + `<br/>
          <strong>Amenities:</strong> ` + v(domain.FieldAmenities) + `<br/>
          <strong>Phone:</strong> ` + v(domain.FieldContactPhone) + `
        </p>
        <div style="display:flex; gap:10px; flex-wrap:wrap; margin-top: 10px;">
          <a class="btn" href="/item/` + id + `">View</a>
          <a class="btn btn-outline" href="/item/` + id + `/edit">Edit</a>
          <form method="POST" action="/item/` + id + `/delete" style="display:inline;">
            <button class="btn btn-outline" type="submit" onclick="return confirm('Delete this hotel?')">Delete</button>
          </form>
        </div>
      </div>`)
	}
	return b.String()
}

func cardValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return view.Escape(v)
	case float64:
		return formatNumber(v)
	case int:
		return strconv.Itoa(v)
	}
	return ""
}

func formatNumber(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func (h *Handlers) createPage(w http.ResponseWriter, r *http.Request) {
	in, err := listingInput(w, r)
	if err != nil {
		http.Error(w, "Invalid data", http.StatusBadRequest)
		return
	}
	l, err := h.Listings.Create(r.Context(), in)
	if err != nil {
		h.pageError(w, "create", err)
		return
	}
	http.Redirect(w, r, "/item/"+l.ID, http.StatusFound)
}

func (h *Handlers) itemPage(w http.ResponseWriter, r *http.Request) {
	l, err := h.Listings.Get(r.Context(), chi.URLParam(r, "id"), nil)
	if err != nil {
		h.pageError(w, "get", err)
		return
	}
	h.render(w, http.StatusOK, "item.html", view.Values{
		"id":            l.ID,
		"title":         l.Title,
		"description":   l.Description,
		"location":      l.Location,
		"availability":  "Available",
		"price":         formatNumber(l.PricePerNight) + " ₸ / night",
		"stars":         l.Stars,
		"rooms":         l.Rooms,
		"amenities":     l.Amenities,
		"contact_phone": l.ContactPhone,
	})
}

func (h *Handlers) editPage(w http.ResponseWriter, r *http.Request) {
	l, err := h.Listings.Get(r.Context(), chi.URLParam(r, "id"), nil)
	if err != nil {
		h.pageError(w, "get", err)
		return
	}
	h.render(w, http.StatusOK, "edit-hotel.html", view.Values{
		"id":              l.ID,
		"title":           l.Title,
		"description":     l.Description,
		"location":        l.Location,
		"price_per_night": formatNumber(l.PricePerNight),
		"stars":           l.Stars,
		"rooms":           l.Rooms,
		"amenities":       l.Amenities,
		"contact_phone":   l.ContactPhone,
	})
}

func (h *Handlers) updatePage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !domain.IsValidID(id) {
		h.pageError(w, "update", domain.ErrInvalidID)
		return
	}
	in, err := listingInput(w, r)
	if err != nil {
		http.Error(w, "Invalid data", http.StatusBadRequest)
		return
	}
	if _, err := h.Listings.Update(r.Context(), id, in); err != nil {
		h.pageError(w, "update", err)
		return
	}
	http.Redirect(w, r, "/item/"+id, http.StatusFound)
}

func (h *Handlers) deletePage(w http.ResponseWriter, r *http.Request) {
	if err := h.Listings.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.pageError(w, "delete", err)
		return
	}
	http.Redirect(w, r, "/hotels", http.StatusFound)
}
