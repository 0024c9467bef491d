package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SearchResponseKind discriminates the two shapes the search endpoint can answer with.
type SearchResponseKind int

const (
	SearchResponseInvalid SearchResponseKind = iota
	SearchResponseSuccess
	SearchResponseError
)

// SearchResponse is the validated envelope around a search endpoint reply.
// Exactly one of Geocaches (Success) or Error (Error) is meaningful.
type SearchResponse struct {
	Kind      SearchResponseKind
	Geocaches []GeocacheRecord
	Error     *ErrorResponse
}

// DecodeSearchResponse validates a raw reply: 2xx with a JSON array is a success,
// a JSON object carrying "error" is an error, anything else is rejected.
func DecodeSearchResponse(statusCode int, body []byte) (SearchResponse, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return SearchResponse{}, fmt.Errorf("empty response body (status %d)", statusCode)
	}

	switch trimmed[0] {
	case '[':
		if statusCode < 200 || statusCode >= 300 {
			return SearchResponse{}, fmt.Errorf("array response with status %d", statusCode)
		}
		var records []GeocacheRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return SearchResponse{}, fmt.Errorf("failed to decode geocaches: %w", err)
		}
		if records == nil {
			records = []GeocacheRecord{}
		}
		return SearchResponse{Kind: SearchResponseSuccess, Geocaches: records}, nil
	case '{':
		var e ErrorResponse
		if err := json.Unmarshal(trimmed, &e); err != nil {
			return SearchResponse{}, fmt.Errorf("failed to decode error response: %w", err)
		}
		if e.Error == "" {
			return SearchResponse{}, fmt.Errorf("expected array, got object without error field (status %d)", statusCode)
		}
		return SearchResponse{Kind: SearchResponseError, Error: &e}, nil
	}
	return SearchResponse{}, fmt.Errorf("expected array, got %.32q (status %d)", trimmed, statusCode)
}
