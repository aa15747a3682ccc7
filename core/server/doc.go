// Package server runs an http.Handler with production timeouts and graceful
// shutdown.
//
//	srv := server.New(":8080", server.WithLogger(log))
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, router))
//	if err := g.Wait(); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Run blocks until the context ends, then shuts the server down within the
// shutdown timeout. Addr reports the bound address once the listener is up,
// which makes ":0" usable in tests.
package server
