package langid

import (
	"context"

	perr "langid/internal/platform/errors"

	"golang.org/x/sync/errgroup"
)

// BatchItem is the outcome of one batch entry. Err is set for absent texts only
type BatchItem struct {
	Index  int
	Result Result
	Err    error
}

// DetectBatch runs Detect over texts on a bounded worker pool and keeps input order.
// An absent text fails its own item, not the batch. Cancelling ctx abandons the remaining
// items and returns a Canceled error; a single detection is never interrupted
func (d *Detector) DetectBatch(ctx context.Context, texts []*string, o Options) ([]BatchItem, error) {
	hints, err := d.hints(o)
	if err != nil {
		return nil, err
	}

	items := make([]BatchItem, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)

	for i, text := range texts {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := perr.FromContext(gctx); err != nil {
				return err
			}
			items[i].Index = i
			if text == nil {
				items[i].Err = ErrInvalidArgument
				return nil
			}
			items[i].Result = d.run(*text, o, hints)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := perr.FromContext(ctx); err != nil {
		return nil, err
	}
	return items, nil
}
