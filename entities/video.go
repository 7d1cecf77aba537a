package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CurrentSchemaVersion marks rows written with the split
// original/processed/thumbnail shape. Rows below this version come from
// earlier flat-schema revisions and are reconciled at startup.
const CurrentSchemaVersion = 1

type Video struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title             string    `gorm:"not null" json:"title"`
	OriginalFilename  string    `gorm:"not null" json:"original_filename"`
	ProcessedFilename string    `gorm:"uniqueIndex;not null" json:"processed_filename"`
	ThumbnailFilename string    `json:"thumbnail_filename"`
	OriginalPath      string    `json:"original_path"`
	ProcessedPath     string    `json:"processed_path"`
	ThumbnailPath     string    `json:"thumbnail_path"`
	UploadDate        time.Time `gorm:"not null;index" json:"upload_date"`
	SchemaVersion     int       `gorm:"not null;default:0" json:"schema_version"`
}

func (Video) TableName() string {
	return "videos"
}

func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.UploadDate.IsZero() {
		v.UploadDate = time.Now()
	}
	return nil
}
