package response

import "errors"

// ErrNilComponent is returned when a nil templ component is rendered.
var ErrNilComponent = errors.New("templ component is nil")
