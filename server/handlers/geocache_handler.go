package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"geocache-finder/logger"
	"geocache-finder/models"
	services "geocache-finder/service"
)

const MAX_SEARCH_BODY_BYTES = 1 << 20

// GeocacheSearcher runs a search from a raw request body.
type GeocacheSearcher interface {
	SearchJSON(ctx context.Context, body []byte) ([]models.GeocacheRecord, error)
}

type GeocacheHandler struct {
	searcher           GeocacheSearcher
	exposeErrorDetails bool
}

func NewGeocacheHandler(searcher GeocacheSearcher, exposeErrorDetails bool) *GeocacheHandler {
	return &GeocacheHandler{searcher: searcher, exposeErrorDetails: exposeErrorDetails}
}

// SearchGeocaches handles POST /v1/geocaches/search.
func (h *GeocacheHandler) SearchGeocaches(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MAX_SEARCH_BODY_BYTES))
	if err != nil {
		h.writeError(w, &services.SearchError{Kind: services.ErrorKindInput, Err: err})
		return
	}

	records, err := h.searcher.SearchJSON(r.Context(), body)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *GeocacheHandler) writeError(w http.ResponseWriter, err error) {
	var se *services.SearchError
	if !errors.As(err, &se) {
		se = &services.SearchError{Kind: services.ErrorKindQuery, Err: err}
	}

	resp := models.ErrorResponse{Error: se.Message(), Kind: string(se.Kind)}
	if h.exposeErrorDetails && se.Err != nil {
		resp.Message = se.Err.Error()
	}
	writeJSON(w, statusForKind(se.Kind), resp)
}

func statusForKind(kind services.ErrorKind) int {
	switch kind {
	case services.ErrorKindInput:
		return http.StatusBadRequest
	case services.ErrorKindConnection:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L().Error("response_encode_failed", "err", err)
	}
}

// Ping handles GET /ping
func Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}
