package extract

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Outcome says how a retried call ended.
type Outcome int

const (
	// Succeeded means the call returned a response.
	Succeeded Outcome = iota
	// ExhaustedTransient means every attempt failed and the last failure
	// looked like a rate limit. The service may recover on its own.
	ExhaustedTransient
	// NonRetryable means the final failure was not a rate limit.
	NonRetryable
)

// Policy controls how often and how patiently a call class is retried.
// MaxRetries counts extra attempts after the first one, so a policy with
// MaxRetries 2 makes at most 3 calls.
type Policy struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// Result is the final state of a retried call. Err holds the last attempt's
// error when Outcome is not Succeeded.
type Result struct {
	Outcome Outcome
	Text    string
	Err     error
}

var rateLimitMarkers = []string{"429", "quota", "rate", "resource_exhausted", "exceeded"}

// IsRateLimited reports whether an error reads like an upstream rate limit
// or quota exhaustion.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range rateLimitMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// CallWithRetry runs op until it succeeds or the policy's attempt ceiling is
// reached. Rate-limit failures back off exponentially with jitter, other
// failures wait a flat base delay. Waits end early when ctx is cancelled.
func CallWithRetry(ctx context.Context, log zerolog.Logger, policy Policy, op func(context.Context) (string, error)) Result {
	var lastErr error

	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		text, err := op(ctx)
		if err == nil {
			return Result{Outcome: Succeeded, Text: text}
		}
		lastErr = err

		if attempt == policy.MaxRetries {
			break
		}

		var delay time.Duration
		if IsRateLimited(err) {
			delay = policy.BaseDelay*time.Duration(1<<attempt) + jitter()
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Int("max_retries", policy.MaxRetries).
				Dur("delay", delay).
				Msg("rate limit hit, retrying")
		} else {
			delay = policy.BaseDelay + jitter()
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Int("max_retries", policy.MaxRetries).
				Dur("delay", delay).
				Msg("completion call failed, retrying")
		}

		if !sleep(ctx, delay) {
			break
		}
	}

	outcome := NonRetryable
	if IsRateLimited(lastErr) {
		outcome = ExhaustedTransient
	}
	log.Error().Err(lastErr).Int("attempts", policy.MaxRetries+1).Msg("completion call failed after all attempts")
	return Result{Outcome: outcome, Err: lastErr}
}

// jitter adds a random fraction of a second to every retry delay. Declared
// as a variable so tests can replace it.
var jitter = func() time.Duration {
	return time.Duration(rand.Float64() * float64(time.Second))
}

// sleep waits for d unless ctx ends first, reporting false when it did.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
