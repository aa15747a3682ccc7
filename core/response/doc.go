// Package response provides handler.Response constructors for plain text,
// JSON, redirects and templ components.
//
// Every constructor returns a closure; nothing is written until the router (or
// an error handler through Render) invokes it:
//
//	func show(ctx *router.Context) handler.Response {
//		return response.JSONWithStatus(map[string]string{"ok": "yes"}, http.StatusCreated)
//	}
//
// Error returns a Response that fails with the given error, which hands
// control to the router's error handler chain.
package response
