package response

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/a-h/templ"

	"github.com/forumkit/errgate/core/handler"
)

// Templ creates an HTML response using a templ component with 200 OK status.
func Templ(component templ.Component) handler.Response {
	return TemplWithStatus(component, http.StatusOK)
}

// TemplWithStatus creates an HTML response using a templ component with custom
// status code. The component is rendered into a buffer first, so a render
// failure leaves the response untouched and the caller can still answer.
func TemplWithStatus(component templ.Component, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if component == nil {
			return ErrNilComponent
		}

		var buf bytes.Buffer
		if err := component.Render(r.Context(), &buf); err != nil {
			return fmt.Errorf("templ component render error: %w", err)
		}

		if status == 0 {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, err := w.Write(buf.Bytes())
		return err
	}
}
