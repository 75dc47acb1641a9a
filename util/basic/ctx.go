package basic

import "context"

// Cancelled reports, without blocking, whether ctx is already done. Long
// loops check it between external calls.
func Cancelled(ctx context.Context) bool {
	return ctx.Err() != nil
}
