// Package redis connects the go-redis client used by the redis session
// backend.
//
// Connect parses Config.ConnectionURL, pings the server and retries until
// it answers or the connect timeout elapses. Healthcheck adapts a client to
// the httpserver health handler.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
package redis
