// Package health provides liveness and readiness handlers.
//
//	r.Get("/health/live", health.Liveness[*router.Context])
//	r.Get("/health/ready", health.Readiness[*router.Context](
//		log,
//		pg.Healthcheck(pool),
//		redis.Healthcheck(client),
//	))
//
// A failed readiness check is raised as a 503 error and answered by the
// router's error handler chain like any other failure.
package health
