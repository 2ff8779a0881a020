package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"github.com/f1stats/f1-stats-server/pkg/cache"
)

// seasonQuery is one of the four core operations, season in, plain data
// structure out.
type seasonQuery func(ctx context.Context, year int) (any, error)

// queryHandler wraps a season query with parameter validation, the
// memoization layer, and JSON encoding. Core failures surface as a
// generic error envelope with status 500; the handler does not
// distinguish error kinds.
func (s *Server) queryHandler(operation string, query seasonQuery) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := parseSeason(r)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}

		key := cache.Key{Operation: operation, Season: year}

		if s.store != nil {
			body, err := s.store.Get(r.Context(), key)
			if err == nil {
				s.writeBody(w, body)
				return
			}
			if !errors.Is(err, cache.ErrCacheMiss) {
				s.logger.Warn().Err(err).Str("operation", operation).Msg("Cache get error")
			}
		}

		start := time.Now()
		result, err := query(r.Context(), year)
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("operation", operation).
				Int("season", year).
				Msg("Season query failed")
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}

		body, err := json.Marshal(result)
		if err != nil {
			s.logger.Error().Err(err).Str("operation", operation).Msg("Encode response failed")
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}

		s.logger.Debug().
			Str("operation", operation).
			Int("season", year).
			Dur("duration", time.Since(start)).
			Msg("Season query served")

		if s.store != nil {
			if err := s.store.Set(r.Context(), key, body); err != nil {
				s.logger.Warn().Err(err).Str("operation", operation).Msg("Cache set error")
			}
		}

		s.writeBody(w, body)
	}
}

// parseSeason validates the required season query parameter.
func parseSeason(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("season")
	if raw == "" {
		return 0, fmt.Errorf("season query parameter is required")
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year <= 0 {
		return 0, fmt.Errorf("season must be a positive year, got %q", raw)
	}
	return year, nil
}

func (s *Server) writeBody(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	body, merr := json.Marshal(map[string]string{"error": err.Error()})
	if merr != nil {
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}
