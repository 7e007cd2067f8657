package domain

import "time"

// Series statuses surfaced to the dashboard. The table historically stores
// "active" for published series; repositories map it to completed on read.
const (
	SeriesStatusComingSoon = "coming_soon"
	SeriesStatusDraft      = "draft"
	SeriesStatusUploading  = "uploading"
	SeriesStatusCompleted  = "completed"
	SeriesStatusFailed     = "failed"
)

// SeriesCategoryLatest is the shelf new uploads land on in the mobile app
const SeriesCategoryLatest = "latest"

// Series is a row from the series_meta table. Visible and IsFeatured are the
// two flags the mobile app reads; everything else is display metadata.
type Series struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Genre        string    `json:"genre,omitempty"`
	Description  string    `json:"description,omitempty"`
	Category     string    `json:"category,omitempty"`
	PosterURL    string    `json:"image_url,omitempty"`
	EpisodeCount int       `json:"episodes"`
	Status       string    `json:"status"`
	Visible      bool      `json:"visible"`
	IsFeatured   bool      `json:"is_featured"`
	CreatedAt    time.Time `json:"created_at"`
}

// Episode is a row from the episodes table. Episodes are replaced wholesale
// on every series update; there is no per-episode editing.
type Episode struct {
	ID            string `json:"id,omitempty"`
	SeriesID      string `json:"series_id"`
	Title         string `json:"title"`
	EpisodeNumber int    `json:"episode_number"`
	VideoURL      string `json:"video_url"`
	ThumbnailURL  string `json:"thumbnail_url,omitempty"`
}

// SeriesInput is the payload for publishing or updating a series
type SeriesInput struct {
	Title       string         `json:"title"`
	Genre       string         `json:"genre"`
	Description string         `json:"description"`
	PosterURL   string         `json:"poster_url"`
	Featured    bool           `json:"featured"`
	Episodes    []EpisodeInput `json:"episodes"`
}

// EpisodeInput is one episode in a series publish/update payload
type EpisodeInput struct {
	Title        string `json:"title"`
	VideoURL     string `json:"video_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}
