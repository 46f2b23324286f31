package redisclient

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// nudgeKey is a plain list used as a wake-up signal between the API that
// enqueues jobs and the worker that drains them. The list carries no
// payload; the jobs table in Postgres is the source of truth.
const nudgeKey = "festhub:jobs:nudge"

type Client struct {
	redisdb *redis.Client
}

type Config struct {
	Addr     string
	Password string
	DB       int
}

func New(cfg Config) *Client {
	redisdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	return &Client{redisdb: redisdb}
}

func (c *Client) Ping(ctx context.Context) error {
	return c.redisdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.redisdb.Close()
}

// Nudge tells any listening worker that a job row was just committed.
// Losing a nudge is harmless, the worker polls as a fallback.
func (c *Client) Nudge(ctx context.Context) error {
	return c.redisdb.LPush(ctx, nudgeKey, "1").Err()
}

// WaitNudge blocks up to timeout for a wake-up signal. Returns true when a
// nudge arrived, false on timeout.
func (c *Client) WaitNudge(ctx context.Context, timeout time.Duration) (bool, error) {
	// BRPOP needs a read deadline longer than its block timeout
	res := c.redisdb.WithTimeout(timeout + 2*time.Second).BRPop(ctx, timeout, nudgeKey)

	if err := res.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
