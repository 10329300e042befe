package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/phanxgames/orbit"
)

// Problem is an image reference that could not be fetched or decoded.
type Problem struct {
	ItemID string
	Image  string
	Err    error
}

func (p Problem) Error() string {
	return fmt.Sprintf("item %q: image %q: %v", p.ItemID, p.Image, p.Err)
}

func (p Problem) Unwrap() error { return p.Err }

// Check fetches every distinct image in items, at most limit at a time, and
// returns the ones that fail in catalog order. The error is non-nil only
// when ctx is cancelled.
func Check(ctx context.Context, items []orbit.Item, fetcher orbit.Fetcher, limit int) ([]Problem, error) {
	type ref struct{ item, image string }
	var refs []ref
	seen := make(map[string]bool)
	for i := range items {
		for _, img := range items[i].Images {
			if seen[img] {
				continue
			}
			seen[img] = true
			refs = append(refs, ref{items[i].ID, img})
		}
	}

	if limit <= 0 {
		limit = 4
	}
	errs := make([]error, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, r := range refs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if r.image == "" {
				errs[i] = orbit.ErrEmptyURL
				return nil
			}
			_, errs[i] = fetcher.Fetch(gctx, r.image)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var problems []Problem
	for i, err := range errs {
		if err != nil {
			problems = append(problems, Problem{ItemID: refs[i].item, Image: refs[i].image, Err: err})
		}
	}
	return problems, nil
}
