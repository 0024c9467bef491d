package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"geocache-finder/metrics"
	"geocache-finder/server/handlers"
)

type Router struct {
	geocacheHandler *handlers.GeocacheHandler
	photoHandler    *handlers.PhotoHandler
	router          *mux.Router
}

// NewRouter creates a router with the app's routes.
func NewRouter(
	geocacheHandler *handlers.GeocacheHandler,
	photoHandler *handlers.PhotoHandler,
	router *mux.Router) *Router {
	return &Router{
		geocacheHandler: geocacheHandler,
		photoHandler:    photoHandler,
		router:          router,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.Use(requestIDMiddleware, accessLogMiddleware)

	// expects a JSON body {minLat, maxLat, minLng, maxLng, type?, difficulty?}
	r.router.HandleFunc("/v1/geocaches/search", r.geocacheHandler.SearchGeocaches).Methods(http.MethodPost)

	// expects ?lat={latitude(float)}&lng={longitude(float)}
	r.router.HandleFunc("/v1/photos", r.photoHandler.GetPhotosNearby).Methods(http.MethodGet)

	r.router.HandleFunc("/ping", handlers.Ping).Methods(http.MethodGet)
	r.router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
}
