package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"geocache-finder/config"
	"geocache-finder/dao/sqldb"
	"geocache-finder/db"
	"geocache-finder/logger"
	"geocache-finder/metrics"
	"geocache-finder/models"
)

// GeocacheQueryService answers bounding-box searches, one store connection per call.
type GeocacheQueryService struct {
	store        db.Store
	geocacheDao  *sqldb.GeocacheDAO
	queryTimeout time.Duration
}

// NewGeocacheQueryService picks the DAO dialect from the store's driver.
func NewGeocacheQueryService(store db.Store, queryTimeout time.Duration) (*GeocacheQueryService, error) {
	dialect, ok := sqldb.DialectFor(store.Driver())
	if !ok {
		return nil, fmt.Errorf("no query dialect for store driver %q", store.Driver())
	}
	if queryTimeout <= 0 {
		queryTimeout = config.DEFAULT_STORE_QUERY_TIMEOUT
	}
	return &GeocacheQueryService{
		store:        store,
		geocacheDao:  sqldb.NewGeocacheDAO(dialect),
		queryTimeout: queryTimeout,
	}, nil
}

// SearchJSON decodes a raw request body and runs the search. A body that is missing,
// unparsable or not a JSON object fails with an input error before the store is touched.
func (s *GeocacheQueryService) SearchJSON(ctx context.Context, body []byte) ([]models.GeocacheRecord, error) {
	req, err := DecodeSearchRequest(body)
	if err != nil {
		s.record("input", time.Now(), 0)
		return nil, err
	}
	return s.Search(ctx, req)
}

// DecodeSearchRequest parses a search body into a request.
func DecodeSearchRequest(body []byte) (models.GeocacheSearchRequest, error) {
	var req models.GeocacheSearchRequest
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return req, inputError(errors.New("empty request body"))
	}
	if trimmed[0] != '{' {
		return req, inputError(errors.New("request body is not a JSON object"))
	}
	if err := json.Unmarshal(trimmed, &req); err != nil {
		return req, inputError(fmt.Errorf("failed to decode request body: %w", err))
	}
	return req, nil
}

// Search validates req, then queries the store. Errors are always *SearchError.
func (s *GeocacheQueryService) Search(ctx context.Context, req models.GeocacheSearchRequest) ([]models.GeocacheRecord, error) {
	start := time.Now()

	box, err := req.BoundingBox()
	if err != nil {
		s.record("input", start, 0)
		return nil, inputError(err)
	}

	conn, err := s.store.Acquire(ctx)
	if err != nil {
		logger.L().Warn("store_acquire_failed", "err", err)
		s.record("connection", start, 0)
		return nil, connectionError(err)
	}
	defer conn.Close()

	qctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	records, err := s.geocacheDao.Search(qctx, conn, sqldb.GeocacheFilter{
		Box:        box,
		CacheType:  req.Type,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		se := classifyQueryError(err)
		logger.L().Error("geocache_search_failed", "kind", se.Kind, "err", err)
		s.record(string(se.Kind), start, 0)
		return nil, se
	}

	logger.L().Debug("geocache_search",
		"minLat", box.MinLat, "maxLat", box.MaxLat, "minLng", box.MinLng, "maxLng", box.MaxLng,
		"type", req.Type.String(), "difficulty", req.Difficulty.String(), "results", len(records))
	s.record("ok", start, len(records))
	return records, nil
}

func (s *GeocacheQueryService) record(outcome string, start time.Time, results int) {
	metrics.SearchesTotal.WithLabelValues(outcome).Inc()
	metrics.SearchDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	if outcome == "ok" {
		metrics.SearchResultsCount.Observe(float64(results))
	}
}
