package httpserver

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

type debugInfo struct {
	Cwd           string   `json:"cwd"`
	Dirname       string   `json:"dirname"`
	ViewsExists   bool     `json:"viewsExists"`
	PublicExists  bool     `json:"publicExists"`
	FilesInViews  []string `json:"filesInViews"`
	FilesInPublic []string `json:"filesInPublic"`
}

// debug reports where the process looks for its views and static files.
func (h *Handlers) debug(w http.ResponseWriter, r *http.Request) {
	cwd, _ := os.Getwd()
	dirname := ""
	if exe, err := os.Executable(); err == nil {
		dirname = filepath.Dir(exe)
	}
	viewsFiles, viewsOK := listDir(h.Views.Dir)
	publicFiles, publicOK := listDir(h.PublicDir)
	writeJSON(w, http.StatusOK, debugInfo{
		Cwd:           cwd,
		Dirname:       dirname,
		ViewsExists:   viewsOK,
		PublicExists:  publicOK,
		FilesInViews:  viewsFiles,
		FilesInPublic: publicFiles,
	})
}

func listDir(dir string) ([]string, bool) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return []string{}, false
	}
	out := make([]string, 0, len(ents))
	for _, e := range ents {
		out = append(out, e.Name())
	}
	return out, true
}

// notFound serves files from the public directory and otherwise answers
// 404, as JSON under /api and with the 404 page elsewhere.
func (h *Handlers) notFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api") {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if (r.Method == http.MethodGet || r.Method == http.MethodHead) && h.PublicDir != "" {
		name := filepath.Join(h.PublicDir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
		if st, err := os.Stat(name); err == nil && !st.IsDir() {
			http.ServeFile(w, r, name)
			return
		}
	}
	out, err := h.Views.Render("404.html", nil)
	if err != nil {
		log.Error().Err(err).Msg("render 404 view")
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(out))
}
