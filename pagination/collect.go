// Package pagination walks paginated collections to the end in a single pass.
//
// A collection is exhausted once the number of items retrieved reaches the
// total advertised by the pages. Any failed fetch aborts the walk and no
// partial aggregate is returned.
package pagination

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yhkl-dev/cmusic/domain"
)

// ErrNoPage is returned when a fetcher reports neither a page nor an error
var ErrNoPage = errors.New("fetcher returned no page")

// OffsetFetcher returns the page starting at offset
type OffsetFetcher[T any] func(ctx context.Context, offset int) (*domain.Page[T], error)

// CursorFetcher returns the page following the item identified by after;
// after is "" for the first page.
type CursorFetcher[T any] func(ctx context.Context, after string) (*domain.Page[T], error)

// CollectOffset requests pages at offset 0, then at the running item count,
// until every item the collection advertised has been retrieved.
func CollectOffset[T any](ctx context.Context, fetch OffsetFetcher[T]) ([]T, error) {
	var all []T
	err := walkOffset(ctx, fetch, func(items []T) {
		all = append(all, items...)
	})
	if err != nil {
		return nil, err
	}
	return nonNil(all), nil
}

// CollectCursor requests the first page with an empty cursor and each following
// page with the cursor of the last item retrieved so far.
func CollectCursor[T any](ctx context.Context, fetch CursorFetcher[T], cursorOf func(T) string) ([]T, error) {
	logger := zerolog.Ctx(ctx)
	var all []T
	after := ""
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := fetch(ctx, after)
		if err != nil {
			return nil, fmt.Errorf("fetching page after %q: %w", after, err)
		}
		if page == nil {
			return nil, fmt.Errorf("fetching page after %q: %w", after, ErrNoPage)
		}
		all = append(all, page.Items...)
		logger.Debug().
			Str("after", after).
			Int("items", len(page.Items)).
			Int("retrieved", len(all)).
			Int("total", page.Total).
			Msg("page fetched")

		if len(all) >= page.Total || len(page.Items) == 0 {
			break
		}
		after = cursorOf(all[len(all)-1])
	}
	return nonNil(all), nil
}

// Partition walks the collection once and routes every item to kept when keep
// reports true, to rest otherwise. Both outputs preserve the source order.
func Partition[T any](ctx context.Context, fetch OffsetFetcher[T], keep func(T) bool) (kept, rest []T, err error) {
	kept, rest = []T{}, []T{}
	err = walkOffset(ctx, fetch, func(items []T) {
		for _, item := range items {
			if keep(item) {
				kept = append(kept, item)
			} else {
				rest = append(rest, item)
			}
		}
	})
	if err != nil {
		return nil, nil, err
	}
	return kept, rest, nil
}

// walkOffset hands each page's items to visit in order.
// A page without items ends the walk so a collection that shrank while being read cannot loop forever.
func walkOffset[T any](ctx context.Context, fetch OffsetFetcher[T], visit func([]T)) error {
	logger := zerolog.Ctx(ctx)
	retrieved := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		page, err := fetch(ctx, retrieved)
		if err != nil {
			return fmt.Errorf("fetching page at offset %d: %w", retrieved, err)
		}
		if page == nil {
			return fmt.Errorf("fetching page at offset %d: %w", retrieved, ErrNoPage)
		}
		visit(page.Items)
		retrieved += len(page.Items)
		logger.Debug().
			Int("offset", retrieved-len(page.Items)).
			Int("items", len(page.Items)).
			Int("total", page.Total).
			Msg("page fetched")

		if retrieved >= page.Total || len(page.Items) == 0 {
			return nil
		}
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
