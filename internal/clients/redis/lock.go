package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/transparency-backend/internal/platform/logger"
)

var ErrLockNotAcquired = errors.New("product lock not acquired")

// ProductLocker serializes work on a single product across processes.
type ProductLocker interface {
	// Lock blocks until the lock is held or ctx is done. The returned func
	// releases it and is safe to call more than once.
	Lock(ctx context.Context, productID uuid.UUID) (func(), error)
	Close() error
}

type noopLocker struct{}

// NewNoopLocker returns a ProductLocker that never blocks.
func NewNoopLocker() ProductLocker { return noopLocker{} }

func (noopLocker) Lock(context.Context, uuid.UUID) (func(), error) { return func() {}, nil }
func (noopLocker) Close() error                                     { return nil }

type LockConfig struct {
	Addr      string
	TTL       time.Duration
	KeyPrefix string
	// RetryEvery is the polling interval while the lock is held elsewhere.
	RetryEvery time.Duration
}

type redisLocker struct {
	log    *logger.Logger
	rdb    *goredis.Client
	ttl    time.Duration
	prefix string
	retry  time.Duration
}

var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func NewProductLocker(cfg LockConfig, log *logger.Logger) (ProductLocker, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	prefix := strings.TrimSpace(cfg.KeyPrefix)
	if prefix == "" {
		prefix = "ingest:product:"
	}
	retry := cfg.RetryEvery
	if retry <= 0 {
		retry = 50 * time.Millisecond
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisLocker{
		log:    log.With("service", "RedisProductLocker"),
		rdb:    rdb,
		ttl:    ttl,
		prefix: prefix,
		retry:  retry,
	}, nil
}

func (l *redisLocker) Lock(ctx context.Context, productID uuid.UUID) (func(), error) {
	key := l.prefix + productID.String()
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	t := time.NewTicker(l.retry)
	defer t.Stop()
	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %v", ErrLockNotAcquired, ctx.Err())
			}
			return nil, fmt.Errorf("acquire product lock: %w", err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrLockNotAcquired, ctx.Err())
		case <-t.C:
		}
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true
		// Release with a fresh context so a cancelled request still frees the key.
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(rctx, l.rdb, []string{key}, token).Err(); err != nil {
			l.log.Warn("Failed to release product lock", "key", key, "error", err)
		}
	}, nil
}

func (l *redisLocker) Close() error {
	if l == nil || l.rdb == nil {
		return nil
	}
	return l.rdb.Close()
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
