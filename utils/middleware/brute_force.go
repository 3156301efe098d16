package middleware

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/studyabroad/cms-api/utils/cache"
	"github.com/studyabroad/cms-api/utils/response"
)

// AttemptWindow is how long failed logins are remembered for an IP.
const AttemptWindow = 15 * time.Minute

// AttemptStore is the subset of the Redis cache the login guard needs.
type AttemptStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	IncrementWithWindow(ctx context.Context, key string, window time.Duration) (int64, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// BruteForceProtection locks out IPs that keep failing to log in. With a nil
// store every check passes and nothing is recorded.
type BruteForceProtection struct {
	store AttemptStore
}

// NewBruteForceProtection creates a new brute force protection instance
func NewBruteForceProtection(store AttemptStore) *BruteForceProtection {
	return &BruteForceProtection{
		store: store,
	}
}

func attemptKey(ip string) string { return fmt.Sprintf("brute_force:attempts:%s", ip) }
func lockKey(ip string) string    { return fmt.Sprintf("brute_force:lock:%s", ip) }

// lockoutFor returns the progressive lockout for a number of failed attempts.
func lockoutFor(attempts int64) time.Duration {
	switch {
	case attempts >= 25:
		return 24 * time.Hour
	case attempts >= 10:
		return time.Hour
	case attempts >= 5:
		return 2 * time.Minute
	default:
		return 0
	}
}

// CheckAndRecordAttempt middleware rejects requests from locked IPs
func (b *BruteForceProtection) CheckAndRecordAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if b.store == nil {
			return c.Next()
		}

		key := lockKey(c.IP())
		locked, err := b.store.Exists(c.Context(), key)
		if err != nil {
			// Redis being down must not block legitimate users.
			log.Warn().Err(err).Msg("brute force check unavailable")
			return c.Next()
		}

		if locked {
			ttl, _ := b.store.TTL(c.Context(), key)
			retryAfter := int(ttl.Seconds())
			if retryAfter <= 0 {
				retryAfter = 60
			}

			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
			return response.TooManyRequests(c, fmt.Sprintf("Too many failed attempts. Try again in %d seconds", retryAfter))
		}

		return c.Next()
	}
}

// RecordFailedAttempt records a failed login attempt and applies progressive lockouts
func (b *BruteForceProtection) RecordFailedAttempt(c *fiber.Ctx, ip, username string) error {
	if b.store == nil {
		return nil
	}
	ctx := c.Context()

	attempts, err := b.store.IncrementWithWindow(ctx, attemptKey(ip), AttemptWindow)
	if err != nil {
		log.Warn().Err(err).Str("ip", ip).Msg("failed to record login attempt")
		return nil
	}

	lockDuration := lockoutFor(attempts)
	if lockDuration == 0 {
		return nil
	}

	log.Warn().Str("ip", ip).Str("username", username).Int64("attempts", attempts).
		Dur("lockout", lockDuration).Msg("login locked out")
	return b.store.Set(ctx, lockKey(ip), "locked", lockDuration)
}

// RecordSuccessfulAttempt clears failed attempts on successful login
func (b *BruteForceProtection) RecordSuccessfulAttempt(c *fiber.Ctx, ip string) error {
	return b.ClearAttempts(c, ip)
}

// GetAttemptCount returns the current attempt count for an IP
func (b *BruteForceProtection) GetAttemptCount(c *fiber.Ctx, ip string) (int, error) {
	if b.store == nil {
		return 0, nil
	}

	val, err := b.store.Get(c.Context(), attemptKey(ip))
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	return strconv.Atoi(val)
}

// IsIPLocked checks if an IP is currently locked
func (b *BruteForceProtection) IsIPLocked(c *fiber.Ctx, ip string) (bool, error) {
	if b.store == nil {
		return false, nil
	}
	return b.store.Exists(c.Context(), lockKey(ip))
}

// ClearAttempts removes the counter and any lock for an IP
func (b *BruteForceProtection) ClearAttempts(c *fiber.Ctx, ip string) error {
	if b.store == nil {
		return nil
	}
	return b.store.Delete(c.Context(), attemptKey(ip), lockKey(ip))
}
