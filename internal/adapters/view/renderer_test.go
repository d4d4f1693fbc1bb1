package view

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscape(t *testing.T) {
	assert.Equal(t, "A&amp;B", Escape("A&B"))
	assert.Equal(t, "&lt;b&gt; &quot;x&quot; &#39;y&#39;", Escape(`<b> "x" 'y'`))
	assert.Equal(t, "&amp;lt;", Escape("&lt;"), "existing entities are escaped once")
}

func TestFill(t *testing.T) {
	tpl := `<h1>{{name}}</h1>{{name}}<div>{{body}}</div>{{missing}}`
	got := Fill(tpl, Values{
		"name": "A&B",
		"body": HTML(`<p class="x">ok</p>`),
	})
	assert.Equal(t, `<h1>A&amp;B</h1>A&amp;B<div><p class="x">ok</p></div>{{missing}}`, got)
}

func TestFill_SinglePass(t *testing.T) {
	got := Fill("{{a}} {{b}}", Values{"a": HTML("{{b}}"), "b": "x"})
	assert.Equal(t, "{{b}} x", got)
}

func TestFill_NonStringValues(t *testing.T) {
	got := Fill("{{p}} {{s}} {{n}}", Values{"p": 70000.0, "s": 5, "n": nil})
	assert.Equal(t, "70000 5 ", got)
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.html"), []byte("<p>{{name}}</p>"), 0o644))
	r := New(dir)

	out, err := r.Render("x.html", Values{"name": "A&B"})
	require.NoError(t, err)
	assert.Equal(t, "<p>A&amp;B</p>", out)

	// reads the file on every call
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.html"), []byte("<b>{{name}}</b>"), 0o644))
	out, err = r.Render("x.html", Values{"name": "A&B"})
	require.NoError(t, err)
	assert.Equal(t, "<b>A&amp;B</b>", out)

	_, err = r.Render("missing.html", nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
