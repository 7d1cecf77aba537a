package repository

import (
	"context"
	"database/sql"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"vidshare/constant"
	"vidshare/entities"
)

type VideoRepository interface {
	Create(ctx context.Context, video *entities.Video) error
	ListByUploadDateDesc(ctx context.Context) ([]*entities.Video, error)
	DeleteAll(ctx context.Context) error
}

type repo struct {
	db *gorm.DB
}

func NewRepo(db *sql.DB) (VideoRepository, error) {
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		},
	)
	if err != nil {
		return nil, err
	}

	if err := gormDB.AutoMigrate(&entities.Video{}); err != nil {
		return nil, err
	}
	if err := migrateLegacyRows(gormDB); err != nil {
		return nil, err
	}

	return &repo{
		db: gormDB,
	}, nil
}

// migrateLegacyRows reconciles rows written by the flat schema revisions:
// the original filename doubles as the processed one and the thumbnail
// falls back to the placeholder. Rows that still end up without a processed
// filename are excluded from listings instead of being served with broken
// URLs.
func migrateLegacyRows(db *gorm.DB) error {
	err := db.Model(&entities.Video{}).
		Where("schema_version < ? AND (processed_filename IS NULL OR processed_filename = '')", entities.CurrentSchemaVersion).
		Updates(map[string]interface{}{
			"processed_filename": gorm.Expr("original_filename"),
			"processed_path":     gorm.Expr("original_path"),
			"thumbnail_path":     constant.PlaceholderThumbnail,
		}).Error
	if err != nil {
		return err
	}
	return db.Model(&entities.Video{}).
		Where("schema_version < ?", entities.CurrentSchemaVersion).
		Update("schema_version", entities.CurrentSchemaVersion).Error
}

func (r *repo) Create(ctx context.Context, video *entities.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *repo) ListByUploadDateDesc(ctx context.Context) ([]*entities.Video, error) {
	var videos []*entities.Video
	err := r.db.WithContext(ctx).
		Where("processed_filename <> ''").
		Order("upload_date DESC").
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *repo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&entities.Video{}).Error
}
