package browse

import (
	"context"

	"github.com/mikey-austin/mu_browse/internal/media"
)

// DefaultSearchLimit bounds the items collected for one browse request.
const DefaultSearchLimit = 150

// Pager drives continuation calls until the cursor runs out or Limit items
// have been collected.
type Pager[T any] struct {
	Limit int
	// Key deduplicates items within one run. Items with an empty key are kept.
	Key   func(T) string
	First func(ctx context.Context) (media.Page[T], error)
	Next  func(ctx context.Context, cursor string) (media.Page[T], error)
}

// Collect runs the pagination loop.
func (p Pager[T]) Collect(ctx context.Context) ([]T, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	seen := make(map[string]struct{})
	out := make([]T, 0)

	page, err := p.First(ctx)
	for {
		if err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			if p.Key != nil {
				if key := p.Key(item); key != "" {
					if _, dup := seen[key]; dup {
						continue
					}
					seen[key] = struct{}{}
				}
			}
			out = append(out, item)
			if len(out) >= limit {
				return out, nil
			}
		}
		if page.Continuation == "" || p.Next == nil {
			return out, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err = p.Next(ctx, page.Continuation)
	}
}

func itemKey(item media.Item) string {
	if id := item.ID(); id != "" {
		return item.Kind.String() + ":" + id
	}
	return ""
}
