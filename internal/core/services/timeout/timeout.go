package timeout

import (
	"context"
	e "pwreset/internal/core/domain/errors"
	"pwreset/internal/core/services"
	"time"
)

type serviceWithTimeout[T any, S any] struct {
	timeout time.Duration
	inner   services.Service[T, S]
}

// WithTimeout bounds the whole run of inner, including every store and
// notifier call it makes. Exceeding the timeout surfaces as
// context.DeadlineExceeded.
func WithTimeout[T any, S any](
	timeout time.Duration,
	inner services.Service[T, S],
) services.Service[T, S] {
	if timeout <= 0 {
		panic("timeout must be positive")
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithTimeout[T, S]{timeout: timeout, inner: inner}
}

func (s *serviceWithTimeout[T, S]) Run(ctx context.Context, input T) (S, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.inner.Run(ctx, input)
}
