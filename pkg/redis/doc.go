// Package redis connects to the Redis server used for cross-instance
// notification delivery (see notify.RedisDeliverer).
//
// Connect retries until the server answers a ping or attempts run out, and a
// Healthcheck closure plugs into liveness/readiness probes:
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
package redis
