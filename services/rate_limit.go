package services

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/econosfera/econ_api/shared"
)

// RateLimitService implements a fixed-window counter per (client IP,
// endpoint class) in redis. It guards the auth endpoints against credential
// stuffing; a cold redis fails open.
type RateLimitService struct {
	appContext.DefaultService

	redisSvc *RedisService

	authLimit  int
	authWindow time.Duration
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *appContext.Context) error {
	svc.authLimit = 10
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			svc.authLimit = n
		}
	}
	svc.authWindow = time.Minute

	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

// Allow increments the window counter and reports whether the request is
// within the limit.
func (svc *RateLimitService) Allow(identifier, class string, limit int, window time.Duration) (bool, error) {
	client := svc.redisSvc.GetClient()
	if client == nil {
		return true, nil
	}

	ctx := context.Background()
	windowStart := time.Now().Truncate(window).Unix()
	key := fmt.Sprintf("ratelimit:%s:%s:%d", class, identifier, windowStart)

	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return true, err
	}
	if count == 1 {
		client.Expire(ctx, key, window)
	}

	return count <= int64(limit), nil
}

// AuthLimiter guards register/login.
func (svc *RateLimitService) AuthLimiter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		allowed, err := svc.Allow(c.IP(), "auth", svc.authLimit, svc.authWindow)
		if err != nil {
			log.WithError(err).Warn("Rate limiter unavailable, failing open")
			return c.Next()
		}
		if !allowed {
			return shared.ResponseJSON(c, fiber.StatusTooManyRequests, "Too many requests", nil)
		}
		return c.Next()
	}
}
