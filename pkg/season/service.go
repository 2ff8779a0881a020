// Package season implements the season-keyed queries: championship
// standings, aggregated race results, and the views derived from them.
package season

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/f1stats/f1-stats-server/pkg/client"
	"github.com/f1stats/f1-stats-server/pkg/ergast"
	"github.com/f1stats/f1-stats-server/pkg/logging"
	"github.com/f1stats/f1-stats-server/pkg/pagination"
)

// Upstream resource paths, relative to the season segment.
const (
	resourceDriverStandings      = "driverStandings.json"
	resourceConstructorStandings = "constructorStandings.json"
	resourceResults              = "results.json"
)

// Service answers season-keyed queries against the Jolpica API. Each
// query runs its fetch-then-fold sequence to completion on the calling
// goroutine; a Service is safe for concurrent use because every query
// owns its own accumulators.
type Service struct {
	client   *client.Client
	pageSize int
	logger   zerolog.Logger
}

// New creates a season query service. A non-positive pageSize falls
// back to the pagination default.
func New(c *client.Client, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = pagination.DefaultPageSize
	}
	return &Service{
		client:   c,
		pageSize: pageSize,
		logger:   logging.NewLogger("season"),
	}
}

// fetchEnvelope retrieves one page of a season resource.
func (s *Service) fetchEnvelope(ctx context.Context, season int, resource string, limit, offset int) (*ergast.Envelope, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	body, err := s.client.Get(ctx, fmt.Sprintf("%d/%s", season, resource), query)
	if err != nil {
		return nil, err
	}
	return ergast.ParseEnvelope(body)
}

// standingsPage adapts one standings envelope into a pagination page.
func (s *Service) standingsPage(ctx context.Context, season int, resource string, limit, offset int,
	pick func(ergast.MRData) []json.RawMessage,
) (pagination.Page[json.RawMessage], error) {
	env, err := s.fetchEnvelope(ctx, season, resource, limit, offset)
	if err != nil {
		return pagination.Page[json.RawMessage]{}, err
	}
	total, err := env.MRData.TotalCount()
	if err != nil {
		return pagination.Page[json.RawMessage]{}, err
	}
	return pagination.Page[json.RawMessage]{Items: pick(env.MRData), Total: total}, nil
}

// DriverStandings returns the season's driver standings rows verbatim,
// concatenated across pages. A season without standings yields an
// empty list.
func (s *Service) DriverStandings(ctx context.Context, season int) ([]json.RawMessage, error) {
	items, err := pagination.FetchAll(ctx, resourceDriverStandings, s.pageSize,
		func(ctx context.Context, limit, offset int) (pagination.Page[json.RawMessage], error) {
			return s.standingsPage(ctx, season, resourceDriverStandings, limit, offset, ergast.MRData.DriverStandings)
		})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []json.RawMessage{}
	}
	return items, nil
}

// ConstructorStandings returns the season's constructor standings rows
// verbatim, concatenated across pages.
func (s *Service) ConstructorStandings(ctx context.Context, season int) ([]json.RawMessage, error) {
	items, err := pagination.FetchAll(ctx, resourceConstructorStandings, s.pageSize,
		func(ctx context.Context, limit, offset int) (pagination.Page[json.RawMessage], error) {
			return s.standingsPage(ctx, season, resourceConstructorStandings, limit, offset, ergast.MRData.ConstructorStandings)
		})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []json.RawMessage{}
	}
	return items, nil
}

// Results returns every race of a season with its per-driver result
// rows, in upstream round order. This is the single upstream round trip
// both derivations fold over.
func (s *Service) Results(ctx context.Context, season int) ([]ergast.Race, error) {
	races, err := pagination.FetchAll(ctx, resourceResults, s.pageSize,
		func(ctx context.Context, limit, offset int) (pagination.Page[ergast.Race], error) {
			env, err := s.fetchEnvelope(ctx, season, resourceResults, limit, offset)
			if err != nil {
				return pagination.Page[ergast.Race]{}, err
			}
			total, err := env.MRData.TotalCount()
			if err != nil {
				return pagination.Page[ergast.Race]{}, err
			}
			return pagination.Page[ergast.Race]{Items: env.MRData.Races(), Total: total}, nil
		})
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Int("season", season).
		Int("races", len(races)).
		Msg("Season results aggregated")

	return races, nil
}

// PointsProgression returns the race-by-race cumulative points table
// for a season.
func (s *Service) PointsProgression(ctx context.Context, season int) (*PointsTable, error) {
	races, err := s.Results(ctx, season)
	if err != nil {
		return nil, err
	}
	return BuildPointsProgression(races), nil
}

// PilotStats returns the per-driver win/podium/retirement counters for
// a season.
func (s *Service) PilotStats(ctx context.Context, season int) (PilotStatsTable, error) {
	races, err := s.Results(ctx, season)
	if err != nil {
		return nil, err
	}
	return BuildPilotStats(races), nil
}
