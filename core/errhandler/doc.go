// Package errhandler answers request errors for the forum's HTTP server.
//
// It provides two error handlers that compose through handler.ChainErrors:
//
//   - URIErrors, an error middleware that recovers malformed topic and
//     category links by redirecting to their canonical prefix, answers other
//     malformed URIs with 400, and passes every other error on unchanged.
//   - Errors, the terminal handler. It answers CSRF mismatches with a bare
//     403, blacklisted clients with a plain-text 403, redirect signals with a
//     redirect (or the bare target as JSON for API calls), and everything
//     else with a JSON body or the rendered "500" page.
//
// Wire both into a router:
//
//	opts := []errhandler.Option{
//		errhandler.WithRelativePath(cfg.RelativePath),
//		errhandler.WithLogger(log),
//		errhandler.WithI18n(bundle),
//	}
//	r := router.New[*router.Context](
//		router.WithErrorHandler(errhandler.New[*router.Context](opts...)),
//	)
//
// API calls are detected with middleware.IsAPI unless WithAPIDetector says
// otherwise. HTML pages are rendered after the page header has been built;
// if building it fails, a minimal unstyled page with the same status and
// fields is served instead.
package errhandler
