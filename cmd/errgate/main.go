// Command errgate runs the forum server with its error handler chain.
//
// Configuration comes from the environment (and a .env file when present):
//
//	SERVER_ADDR=:8080 RELATIVE_PATH=/forum IP_BLACKLIST=203.0.113.0/24 errgate
//
// Setting REDIS_URL or PG_CONN_URL moves the IP blacklist into Redis or
// PostgreSQL.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/forumkit/errgate/app/forum"
	"github.com/forumkit/errgate/core/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := forum.NewApp(ctx)
	if err != nil {
		logger.New().Error("failed to start", logger.Error(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.New().Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}
