package errhandler

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/forumkit/errgate/core/header"
)

// Page names rendered by the handlers.
const (
	PageBadRequest = "400"
	PageError      = "500"
)

// PageData is passed to error pages. Path and Error are already HTML-escaped.
type PageData struct {
	Header header.Header
	Status int
	Path   string
	Error  string
}

// Pages renders named error pages.
type Pages interface {
	Page(name string, data PageData) templ.Component
}

// PagesFunc adapts a function to Pages.
type PagesFunc func(name string, data PageData) templ.Component

// Page implements Pages.
func (f PagesFunc) Page(name string, data PageData) templ.Component {
	return f(name, data)
}

// DefaultPages renders the built-in "400" and "500" pages. Unknown names get
// the fallback page.
type DefaultPages struct{}

// Page implements Pages.
func (DefaultPages) Page(name string, data PageData) templ.Component {
	switch name {
	case PageBadRequest:
		return layout(data, name, func(w io.Writer) error {
			return writeAll(w,
				`<p>`, esc(data.Header.T("[[global:400.message]]")), `</p>`,
				`<p class="error">`, data.Error, `</p>`,
			)
		})
	case PageError:
		return layout(data, name, func(w io.Writer) error {
			return writeAll(w,
				`<p>`, esc(data.Header.T("[[global:500.message]]")), `</p>`,
				`<p class="path"><code>`, data.Path, `</code></p>`,
				`<p class="error">`, data.Error, `</p>`,
			)
		})
	default:
		return FallbackPage(data)
	}
}

// FallbackPage is a minimal unstyled page that needs nothing from the page
// header. It is served when building the header or rendering a page fails.
func FallbackPage(data PageData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		title := statusTitle(data.Status)
		parts := []string{
			`<!DOCTYPE html><html><head><meta charset="utf-8"><title>`, title, `</title></head><body>`,
			`<h1>`, title, `</h1>`,
		}
		if data.Path != "" {
			parts = append(parts, `<p><code>`, data.Path, `</code></p>`)
		}
		if data.Error != "" {
			parts = append(parts, `<p>`, data.Error, `</p>`)
		}
		parts = append(parts, `</body></html>`)
		return writeAll(w, parts...)
	})
}

func layout(data PageData, name string, body func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := data.Header
		title := h.T("[[global:" + name + ".title]]")
		lang := h.Lang
		if lang == "" {
			lang = "en"
		}

		if err := writeAll(w,
			`<!DOCTYPE html><html lang="`, esc(lang), `"><head><meta charset="utf-8">`,
			`<title>`, esc(title), ` | `, esc(h.SiteTitle), `</title></head>`,
			`<body data-status="`, strconv.Itoa(data.Status), `">`,
			`<main class="error-page"><h1>`, esc(title), `</h1>`,
		); err != nil {
			return err
		}
		if err := body(w); err != nil {
			return err
		}
		return writeAll(w,
			`<a href="`, esc(h.RelativePath+"/"), `">`, esc(h.T("[[global:home]]")), `</a>`,
			`</main></body></html>`,
		)
	})
}

func statusTitle(status int) string {
	if text := http.StatusText(status); text != "" {
		return strconv.Itoa(status) + " " + text
	}
	return strconv.Itoa(status)
}

func esc(s string) string {
	return templ.EscapeString(s)
}

func writeAll(w io.Writer, parts ...string) error {
	_, err := io.WriteString(w, strings.Join(parts, ""))
	return err
}
