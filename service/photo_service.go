package services

import (
	"context"
	"errors"
	"time"

	"geocache-finder/api/flickr"
	"geocache-finder/dao/redis"
	"geocache-finder/db"
	"geocache-finder/logger"
	"geocache-finder/metrics"
	"geocache-finder/models"
)

// PhotoService looks up photos near a geocache. It never fails: every problem
// degrades to an "unavailable" result.
type PhotoService struct {
	photoDao  *redis.RedisPhotoDAO // nil disables the cache
	flickrApi flickr.FlickrAPI
}

func NewPhotoService(photoDao *redis.RedisPhotoDAO, flickrApi flickr.FlickrAPI) *PhotoService {
	return &PhotoService{
		photoDao:  photoDao,
		flickrApi: flickrApi,
	}
}

func (ps *PhotoService) GetPhotosNearby(ctx context.Context, lat, lng float64) models.PhotoSearchResult {
	result := ps.lookup(ctx, lat, lng)
	metrics.PhotoLookupsTotal.WithLabelValues(result.Status).Inc()
	return result
}

func (ps *PhotoService) lookup(ctx context.Context, lat, lng float64) models.PhotoSearchResult {
	if ps.photoDao != nil {
		photos, err := ps.photoDao.GetPhotos(ctx, lat, lng)
		if err == nil {
			metrics.PhotoCacheHitsTotal.Inc()
			return photoResult(photos)
		}
		metrics.PhotoCacheMissesTotal.Inc()
		if !errors.Is(err, db.ErrCacheMiss) {
			logger.L().Warn("photo_cache_read_failed", "err", err)
		}
	}

	start := time.Now()
	response, err := ps.flickrApi.SearchPhotos(ctx, lat, lng)
	metrics.FlickrDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		logger.L().Warn("photo_search_failed", "lat", lat, "lng", lng, "err", err)
		return models.PhotoSearchResult{Status: models.PhotoStatusUnavailable, Photos: []models.Photo{}}
	}

	photos := response.ToPhotos()
	if ps.photoDao != nil {
		if err := ps.photoDao.SetPhotos(ctx, lat, lng, photos); err != nil {
			logger.L().Warn("photo_cache_write_failed", "err", err)
		}
	}
	return photoResult(photos)
}

func photoResult(photos []models.Photo) models.PhotoSearchResult {
	if len(photos) == 0 {
		return models.PhotoSearchResult{Status: models.PhotoStatusEmpty, Photos: []models.Photo{}}
	}
	return models.PhotoSearchResult{Status: models.PhotoStatusOK, Photos: photos}
}
