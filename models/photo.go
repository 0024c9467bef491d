package models

import "fmt"

// Photo lookup outcomes reported to clients.
const (
	PhotoStatusOK          = "ok"
	PhotoStatusEmpty       = "empty"
	PhotoStatusUnavailable = "unavailable"
)

// Photo is a thumbnail near a geocache.
type Photo struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// PhotoSearchResult is the reply of the photo proxy endpoint.
type PhotoSearchResult struct {
	Status string  `json:"status"`
	Photos []Photo `json:"photos"`
}

// FlickrPhotosSearchResponse is the subset of flickr.photos.search we read.
type FlickrPhotosSearchResponse struct {
	Photos  FlickrPhotoPage `json:"photos"`
	Stat    string          `json:"stat"`
	Code    int             `json:"code,omitempty"`
	Message string          `json:"message,omitempty"`
}

type FlickrPhotoPage struct {
	Page    int           `json:"page"`
	Pages   int           `json:"pages"`
	PerPage int           `json:"perpage"`
	Photo   []FlickrPhoto `json:"photo"`
}

type FlickrPhoto struct {
	ID     string `json:"id"`
	Owner  string `json:"owner"`
	Secret string `json:"secret"`
	Server string `json:"server"`
	Farm   int    `json:"farm"`
	Title  string `json:"title"`
}

// FlickrThumbnailURLFormat is Flickr's static URL template with the "_t" (100px) size suffix.
const FlickrThumbnailURLFormat = "https://farm%d.staticflickr.com/%s/%s_%s_t.jpg"

// ThumbnailURL builds the deterministic thumbnail URL of the photo.
func (p FlickrPhoto) ThumbnailURL() string {
	return fmt.Sprintf(FlickrThumbnailURLFormat, p.Farm, p.Server, p.ID, p.Secret)
}

// ToPhotos converts a search page into thumbnails.
func (r FlickrPhotosSearchResponse) ToPhotos() []Photo {
	photos := make([]Photo, 0, len(r.Photos.Photo))
	for _, p := range r.Photos.Photo {
		photos = append(photos, Photo{ID: p.ID, Title: p.Title, ThumbnailURL: p.ThumbnailURL()})
	}
	return photos
}
