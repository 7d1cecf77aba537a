package dto

import (
	"time"

	"github.com/google/uuid"

	"vidshare/entities"
)

// VideoResponse is the public projection of a stored video. Field names
// match what the front end consumes.
type VideoResponse struct {
	ID            uuid.UUID `json:"_id"`
	Title         string    `json:"title"`
	Path          string    `json:"path"`
	ThumbnailPath string    `json:"thumbnailPath"`
	UploadDate    time.Time `json:"uploadDate"`
}

type UploadResponse struct {
	Message string        `json:"message"`
	Video   VideoResponse `json:"video"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func NewVideoResponse(v *entities.Video) VideoResponse {
	return VideoResponse{
		ID:            v.ID,
		Title:         v.Title,
		Path:          v.ProcessedPath,
		ThumbnailPath: v.ThumbnailPath,
		UploadDate:    v.UploadDate,
	}
}
