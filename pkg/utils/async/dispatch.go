package async

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/workforce-labs/caseflow/pkg/utils/logging"
)

// Dispatch executes a handler asynchronously in a new goroutine. The audit
// trail and notification paths use it: the triggering mutation must never
// block on, or fail because of, a fire-and-forget follow-up. The handler
// gets a fresh background context that keeps only the caller's logger.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	bgCtx := logging.With(context.Background(), logging.From(ctx))

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.From(bgCtx).Error("panic in async handler", "panic", r)
			}
		}()

		if err := handler(bgCtx); err != nil {
			logging.From(bgCtx).Error("async handler failed", "error", goerr.Unwrap(err))
		}
	}()
}
