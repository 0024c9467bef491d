package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"geocache-finder/models"
	"geocache-finder/server/handlers"
)

// mockSearcher is a mock implementation of GeocacheSearcher.
type mockSearcher struct{}

func (m *mockSearcher) SearchJSON(ctx context.Context, body []byte) ([]models.GeocacheRecord, error) {
	return []models.GeocacheRecord{}, nil
}

// mockPhotoFinder is a mock implementation of PhotoFinder.
type mockPhotoFinder struct{}

func (m *mockPhotoFinder) GetPhotosNearby(ctx context.Context, lat, lng float64) models.PhotoSearchResult {
	return models.PhotoSearchResult{Status: models.PhotoStatusEmpty, Photos: []models.Photo{}}
}

func TestRouter_RegisterRoutes(t *testing.T) {
	// Setup
	muxRouter := mux.NewRouter()
	appRouter := NewRouter(
		handlers.NewGeocacheHandler(&mockSearcher{}, false),
		handlers.NewPhotoHandler(&mockPhotoFinder{}),
		muxRouter,
	)
	appRouter.RegisterRoutes()

	// Test Cases
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		statusCode int
		response   string
	}{
		{
			name:       "Search Geocaches",
			method:     "POST",
			path:       "/v1/geocaches/search",
			body:       `{"minLat":0,"maxLat":1,"minLng":0,"maxLng":1}`,
			statusCode: http.StatusOK,
			response:   "[]\n",
		},
		{
			name:       "Search Geocaches Wrong Method",
			method:     "GET",
			path:       "/v1/geocaches/search",
			statusCode: http.StatusMethodNotAllowed,
		},
		{
			name:       "Photos Nearby",
			method:     "GET",
			path:       "/v1/photos?lat=32.25&lng=-110.91",
			statusCode: http.StatusOK,
			response:   `{"status":"empty","photos":[]}` + "\n",
		},
		{
			name:       "Ping Route",
			method:     "GET",
			path:       "/ping",
			statusCode: http.StatusOK,
			response:   `{"status":"pong"}` + "\n",
		},
		{
			name:       "Metrics Route",
			method:     "GET",
			path:       "/metrics",
			statusCode: http.StatusOK,
		},
		{
			name:       "Invalid Route",
			method:     "GET",
			path:       "/invalid",
			statusCode: http.StatusNotFound,
		},
	}

	// Run tests
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(test.method, test.path, strings.NewReader(test.body))
			rr := httptest.NewRecorder()

			muxRouter.ServeHTTP(rr, req)

			// Assert status code
			if rr.Code != test.statusCode {
				t.Errorf("Expected status %d, got %d", test.statusCode, rr.Code)
			}

			// Assert response body, if applicable
			if test.response != "" && rr.Body.String() != test.response {
				t.Errorf("Expected response %s, got %s", test.response, rr.Body.String())
			}
		})
	}
}

func TestRouter_RequestID(t *testing.T) {
	muxRouter := mux.NewRouter()
	NewRouter(
		handlers.NewGeocacheHandler(&mockSearcher{}, false),
		handlers.NewPhotoHandler(&mockPhotoFinder{}),
		muxRouter,
	).RegisterRoutes()

	rr := httptest.NewRecorder()
	muxRouter.ServeHTTP(rr, httptest.NewRequest("GET", "/ping", nil))
	if rr.Header().Get(REQUEST_ID_HEADER) == "" {
		t.Errorf("Expected a generated request id")
	}

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(REQUEST_ID_HEADER, "abc-123")
	rr = httptest.NewRecorder()
	muxRouter.ServeHTTP(rr, req)
	if got := rr.Header().Get(REQUEST_ID_HEADER); got != "abc-123" {
		t.Errorf("Expected request id abc-123, got %s", got)
	}
}
