// Package view fills static HTML files with named values. Placeholders are
// written {{name}}; values are escaped unless wrapped in HTML.
package view

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// HTML marks a fragment the caller has already made safe. It is inserted
// verbatim.
type HTML string

// Values maps placeholder names to their substitutions.
type Values map[string]any

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape replaces & < > " ' with their entities.
func Escape(s string) string { return escaper.Replace(s) }

type Renderer struct {
	Dir string
}

func New(dir string) *Renderer { return &Renderer{Dir: dir} }

// Render reads name from disk on every call and substitutes vals in a single
// pass. Placeholders missing from vals are left as they are.
func (r *Renderer) Render(name string, vals Values) (string, error) {
	raw, err := os.ReadFile(filepath.Join(r.Dir, filepath.Clean("/"+name)))
	if err != nil {
		return "", fmt.Errorf("read view %s: %w", name, err)
	}
	return Fill(string(raw), vals), nil
}

// Fill substitutes vals into tpl.
func Fill(tpl string, vals Values) string {
	if len(vals) == 0 {
		return tpl
	}
	pairs := make([]string, 0, len(vals)*2)
	for k, v := range vals {
		pairs = append(pairs, "{{"+k+"}}", value(v))
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}

func value(v any) string {
	switch v := v.(type) {
	case HTML:
		return string(v)
	case string:
		return Escape(v)
	case nil:
		return ""
	default:
		return Escape(fmt.Sprint(v))
	}
}
