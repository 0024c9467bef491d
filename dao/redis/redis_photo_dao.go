package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"geocache-finder/db"
	"geocache-finder/models"
)

// PHOTOS_KEY_FORMAT_V1 keys cached photo lookups by coordinates rounded to 4 decimals (~11m).
const PHOTOS_KEY_FORMAT_V1 = "flickr_photos_v1:%.4f,%.4f"

// RedisPhotoDAO caches photo lookups in Redis.
type RedisPhotoDAO struct {
	client db.RedisClient
	ttl    time.Duration
}

// NewRedisPhotoDAO initializes a RedisPhotoDAO with the Redis client.
func NewRedisPhotoDAO(client db.RedisClient, ttl time.Duration) *RedisPhotoDAO {
	return &RedisPhotoDAO{client: client, ttl: ttl}
}

func PhotosKey(lat, lng float64) string {
	return fmt.Sprintf(PHOTOS_KEY_FORMAT_V1, lat, lng)
}

// GetPhotos returns the cached photos near lat/lng, or db.ErrCacheMiss.
func (dao *RedisPhotoDAO) GetPhotos(ctx context.Context, lat, lng float64) ([]models.Photo, error) {
	str, err := dao.client.Get(ctx, PhotosKey(lat, lng))
	if err != nil {
		return nil, err
	}
	var photos []models.Photo
	if err := json.Unmarshal([]byte(str), &photos); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached photos JSON: %w", err)
	}
	return photos, nil
}

// SetPhotos caches photos near lat/lng for the DAO's TTL.
func (dao *RedisPhotoDAO) SetPhotos(ctx context.Context, lat, lng float64, photos []models.Photo) error {
	if photos == nil {
		photos = []models.Photo{}
	}
	data, err := json.Marshal(photos)
	if err != nil {
		return fmt.Errorf("failed to marshal photos: %w", err)
	}
	if err := dao.client.Set(ctx, PhotosKey(lat, lng), string(data), dao.ttl); err != nil {
		return fmt.Errorf("failed to set photos in redis: %w", err)
	}
	return nil
}
