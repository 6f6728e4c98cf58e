package blobkit

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"time"
)

// RetryPolicy bounds retries around transient filesystem failures: sharing
// violations and similar OS-level errors raised by file locks that external
// processes (antivirus scanners, backups, concurrent writers) hold briefly.
// Such locks usually clear within tens of milliseconds, so a short geometric
// backoff avoids surfacing spurious failures. A missing file can never
// self-heal and is not retried.
type RetryPolicy struct {
	// Attempts is the number of extra attempts after the first failure.
	Attempts int

	// InitialDelay is the delay before the first retry; each subsequent
	// delay doubles, with random jitter added to avoid retry storms.
	InitialDelay time.Duration
}

// DefaultRetryPolicy returns the policy used when none is configured:
// 3 extra attempts starting at 50ms.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 3, InitialDelay: 50 * time.Millisecond}
}

// retryable classifies an I/O failure. Anything except a missing file or
// directory is worth retrying.
func retryable(err error) bool {
	return !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, ErrNotExist)
}

// do runs fn, retrying qualifying failures up to p.Attempts extra times.
// One warning record is logged per retry attempt. The last failure
// propagates unchanged once the budget is exhausted. Delays honor context
// cancellation.
func (p RetryPolicy) do(ctx context.Context, logger *slog.Logger, op string, fn func() error) error {
	err := fn()
	for attempt := 1; err != nil && retryable(err) && attempt <= p.Attempts; attempt++ {
		delay := p.delay(attempt)
		logger.Warn("retrying blob operation after transient failure",
			"op", op,
			"attempt", attempt,
			"delay", delay,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		err = fn()
	}
	return err
}

// delay computes the backoff for the given retry attempt (1-based):
// InitialDelay doubled per attempt, plus jitter of up to half the base.
func (p RetryPolicy) delay(attempt int) time.Duration {
	base := p.InitialDelay << (attempt - 1)
	if base <= 0 {
		return 0
	}
	jitter := time.Duration(rand.Int64N(int64(base)/2 + 1))
	return base + jitter
}
