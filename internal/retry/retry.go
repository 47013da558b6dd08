// Package retry provides a bounded retry combinator.
package retry

import "context"

// Do runs task with input, retrying up to limit more times while it fails.
// A limit of 0 means exactly one attempt. onFailure, when set, observes each
// failure that is followed by another attempt; the last error is returned as is.
// Retrying stops early once ctx is done.
func Do[I, O any](
	ctx context.Context,
	limit uint8,
	input I,
	task func(context.Context, I) (O, error),
	onFailure func(attempt int, err error),
) (O, error) {
	var attempts uint8
	for {
		out, err := task(ctx, input)
		if err == nil {
			return out, nil
		}
		if attempts >= limit || ctx.Err() != nil {
			return out, err
		}
		attempts++
		if onFailure != nil {
			onFailure(int(attempts), err)
		}
	}
}
