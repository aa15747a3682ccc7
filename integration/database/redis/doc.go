// Package redis creates go-redis clients with connection verification and
// retry, and exposes a health check for them.
//
//	client, err := redis.Connect(ctx, redis.Config{
//		ConnectionURL: "redis://localhost:6379/0",
//		RetryAttempts: 3,
//		RetryInterval: time.Second,
//	})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	check := redis.Healthcheck(client)
//
// Connect validates the URL (redis:// or rediss://), then pings with
// exponential backoff until the server answers, the attempts run out or the
// context ends. Errors wrap ErrEmptyConnectionURL,
// ErrFailedToParseRedisConnString or ErrRedisNotReady.
package redis
