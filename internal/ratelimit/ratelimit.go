package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"codeberg.org/interprep/server/internal/errors"
	"codeberg.org/interprep/server/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const (
	storePrefix  = "interprep:ratelimit"
	pingTimeout  = 5 * time.Second
	userIDKey    = "user_id"
	userKeyLabel = "user:"
)

// Limiter throttles expensive endpoints per user, or per client IP for
// anonymous callers.
type Limiter struct {
	limiter *limiter.Limiter
	client  *redis.Client
}

// rate uses the "<limit>-<period>" format, e.g. "30-M". an empty redisURL
// keeps counters in process memory.
func New(rate, redisURL string) (*Limiter, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", rate, err)
	}

	if redisURL == "" {
		store := memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: storePrefix})
		return &Limiter{limiter: limiter.New(store, r)}, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: storePrefix})
	if err != nil {
		client.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		return nil, fmt.Errorf("failed to create redis rate limit store: %w", err)
	}

	logger.Info("rate limiter using redis store")

	return &Limiter{limiter: limiter.New(store, r), client: client}, nil
}

func (l *Limiter) Middleware() gin.HandlerFunc {
	return mgin.NewMiddleware(l.limiter,
		mgin.WithKeyGetter(key),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			errors.TooManyRequests(c, "rate limit exceeded, try again later")
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			// a broken store should not take the endpoint down
			logger.ErrorErr(err, "rate limiter store failed", "path", c.Request.URL.Path)
			c.Next()
		}),
	)
}

func (l *Limiter) Close() error {
	if l.client == nil {
		return nil
	}

	return l.client.Close()
}

func key(c *gin.Context) string {
	if id, ok := c.Get(userIDKey); ok {
		if uid, ok := id.(int64); ok && uid > 0 {
			return userKeyLabel + strconv.FormatInt(uid, 10)
		}
	}

	return c.ClientIP()
}
