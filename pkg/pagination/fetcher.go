// Package pagination provides sequential offset/limit fetching for
// paginated Jolpica collections.
package pagination

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for paged collection fetches.
var (
	pagesFetchedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "f1_pages_fetched_total",
		Help: "Total upstream pages fetched by resource",
	}, []string{"resource"})

	fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "f1_fetch_duration_seconds",
		Help:    "Full collection fetch duration in seconds by resource",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	}, []string{"resource"})
)

// DefaultPageSize is the limit sent with each page request.
const DefaultPageSize = 100

// Page is one upstream page: its items plus the collection total the
// upstream declared alongside them.
type Page[T any] struct {
	Items []T
	Total int
}

// PageFunc fetches a single page at the given limit and offset.
type PageFunc[T any] func(ctx context.Context, limit, offset int) (Page[T], error)

// FetchAll walks a paginated collection from offset 0 and concatenates
// all pages in page order. The walk stops when a page yields no items
// or when the next offset would reach the declared total. Pages are
// requested strictly one at a time; any page failure aborts the whole
// retrieval with no partial results and no retry.
func FetchAll[T any](ctx context.Context, resource string, pageSize int, fetch PageFunc[T]) ([]T, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	start := time.Now()
	defer func() {
		fetchDuration.WithLabelValues(resource).Observe(time.Since(start).Seconds())
	}()

	var items []T
	pages := 0

	for offset := 0; ; offset += pageSize {
		page, err := fetch(ctx, pageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("fetch %s at offset %d: %w", resource, offset, err)
		}

		pages++
		pagesFetchedTotal.WithLabelValues(resource).Inc()

		if len(page.Items) == 0 {
			break
		}
		items = append(items, page.Items...)

		if offset+pageSize >= page.Total {
			break
		}
	}

	log.Debug().
		Str("resource", resource).
		Int("pages", pages).
		Int("items", len(items)).
		Dur("duration", time.Since(start)).
		Msg("Paged fetch complete")

	return items, nil
}
