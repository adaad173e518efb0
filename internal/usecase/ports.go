package usecase

import "context"

// ConsumptionGuard remembers which order ids have already been consumed.
// Consumption is terminal, so a second attempt for the same id must not pass.
type ConsumptionGuard interface {
	// TryConsume marks the id as consumed. Returns true when the id had not
	// been consumed before, false when this is a duplicate.
	TryConsume(ctx context.Context, orderID uint64) (bool, error)
	// Forget releases the id again, used when the report could not be
	// emitted and the caller is allowed to retry.
	Forget(ctx context.Context, orderID uint64) error
}
