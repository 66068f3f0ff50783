// Package asyncx provides the bounded worker pools used to fan out sends.
//
// # Worker pools
//
// [Pool] processes a slice with at most N goroutines and returns results in
// input order, failing on the first error:
//
//	ids, err := asyncx.Pool(ctx, 4, messages, func(ctx context.Context, m *mailgun.Message) (string, error) {
//	    resp, err := client.SendMessage(ctx, m)
//	    if err != nil {
//	        return "", err
//	    }
//	    return resp.ID, nil
//	})
//
// [PoolSettled] has the same shape but always returns one [Result] per item,
// which is what bulk email sends use to report per-recipient outcomes:
//
//	results := asyncx.PoolSettled(ctx, 4, messages, send)
//	for i, r := range results {
//	    if !r.OK() {
//	        log.Printf("message %d failed: %v", i, r.Err)
//	    }
//	}
//
// Once ctx is done, items that have not started yet are reported with
// ctx.Err() instead of being processed.
package asyncx
