package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"vidshare/constant"
	"vidshare/entities"
	"vidshare/pkg/cleanup"
	"vidshare/repository"
	"vidshare/storage"
)

// UploadInput carries one parsed multipart submission. Save writes the raw
// upload to the destination path; the transport owns the multipart stream,
// the orchestrator owns where it lands.
type UploadInput struct {
	Title    string
	Filename string
	MIMEType string
	Size     int64
	Save     func(dst string) error
}

type UploadService interface {
	Upload(ctx context.Context, in UploadInput) (*entities.Video, error)
}

type uploadService struct {
	repo      repository.VideoRepository
	processor Processor
	dirs      storage.Dirs
}

func NewUploadService(repo repository.VideoRepository, processor Processor, dirs storage.Dirs) UploadService {
	return &uploadService{
		repo:      repo,
		processor: processor,
		dirs:      dirs,
	}
}

// Upload drives one request through validation, processing and persistence.
// Every file created along the way is registered with a cleanup list that
// runs unless the request is accepted, so a failure at any step leaves
// neither orphaned files nor a dangling record.
func (s *uploadService) Upload(ctx context.Context, in UploadInput) (*entities.Video, error) {
	if err := ValidateUpload(in.MIMEType, in.Size, in.Title); err != nil {
		return nil, err
	}

	base := storage.NewBaseName()
	rawName := storage.RawName(base, in.Filename)
	rawPath := filepath.Join(s.dirs.Originals, rawName)

	cl := cleanup.New(zerolog.Ctx(ctx))
	defer cl.Run()
	cl.Add(rawPath)

	if err := in.Save(rawPath); err != nil {
		return nil, fmt.Errorf("store raw upload: %w", err)
	}

	res, err := s.processor.Process(ctx, rawPath, base)
	if err != nil {
		return nil, err
	}
	cl.Add(res.ProcessedPath)
	if res.ThumbnailPath != "" {
		cl.Add(res.ThumbnailPath)
	}

	video := &entities.Video{
		Title:             strings.TrimSpace(in.Title),
		OriginalFilename:  rawName,
		ProcessedFilename: res.ProcessedFilename,
		ThumbnailFilename: res.ThumbnailFilename,
		OriginalPath:      constant.PublicOriginalPrefix + "/" + rawName,
		ProcessedPath:     constant.PublicVideoPrefix + "/" + res.ProcessedFilename,
		ThumbnailPath:     constant.PlaceholderThumbnail,
		SchemaVersion:     entities.CurrentSchemaVersion,
	}
	if res.ThumbnailFilename != "" {
		video.ThumbnailPath = constant.PublicThumbnailPrefix + "/" + res.ThumbnailFilename
	}

	if err := s.repo.Create(ctx, video); err != nil {
		return nil, errors.Join(ErrPersistence, err)
	}

	cl.Release()
	zerolog.Ctx(ctx).Info().
		Str("id", video.ID.String()).
		Str("title", video.Title).
		Str("file", video.ProcessedFilename).
		Msg("video accepted")

	return video, nil
}
