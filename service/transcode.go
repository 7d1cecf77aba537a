package service

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"vidshare/storage"
)

// Fixed output profile: H.264 + AAC in a progressive MP4, width capped
// preserving aspect ratio, plus one early still frame as the thumbnail.
const (
	maxOutputWidth  = 1280
	videoCRF        = "26"
	audioBitrate    = "128k"
	thumbnailOffset = "00:00:01"
	thumbnailFilter = "scale=320:180"
)

// TranscodeProcessor re-encodes the upload and extracts a thumbnail. Both
// ffmpeg runs work off the same raw input concurrently; the first failure
// cancels the other and the processor reports failure with partial outputs
// already removed.
type TranscodeProcessor struct {
	dirs storage.Dirs
}

func (p *TranscodeProcessor) Process(ctx context.Context, rawPath, base string) (Result, error) {
	processedName := storage.ProcessedName(base)
	thumbnailName := storage.ThumbnailName(base)
	processedPath := filepath.Join(p.dirs.Processed, processedName)
	thumbnailPath := filepath.Join(p.dirs.Thumbnails, thumbnailName)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return transcodeToMP4(gctx, rawPath, processedPath)
	})
	g.Go(func() error {
		return extractThumbnail(gctx, rawPath, thumbnailPath)
	})

	if err := g.Wait(); err != nil {
		removePartial(ctx, processedPath)
		removePartial(ctx, thumbnailPath)
		return Result{}, errors.Join(ErrProcessing, err)
	}

	removeRaw(ctx, rawPath)
	zerolog.Ctx(ctx).Debug().Str("file", processedName).Msg("transcode and thumbnail complete")

	return Result{
		ProcessedFilename: processedName,
		ProcessedPath:     processedPath,
		ThumbnailFilename: thumbnailName,
		ThumbnailPath:     thumbnailPath,
	}, nil
}

func transcodeToMP4(ctx context.Context, inputPath, outputPath string) error {
	args := []string{
		"-y",
		"-i", inputPath,
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", videoCRF,
		"-vf", fmt.Sprintf("scale='min(%d,iw)':-2", maxOutputWidth),
		"-c:a", "aac",
		"-b:a", audioBitrate,
		"-movflags", "+faststart",
		outputPath,
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		zerolog.Ctx(ctx).Error().Str("output", string(output)).Msg("ffmpeg transcode failed")
		return fmt.Errorf("ffmpeg execution failed: %w", err)
	}
	return nil
}

func extractThumbnail(ctx context.Context, inputPath, outputPath string) error {
	args := []string{
		"-y",
		"-ss", thumbnailOffset,
		"-i", inputPath,
		"-vframes", "1",
		"-vf", thumbnailFilter,
		outputPath,
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		zerolog.Ctx(ctx).Error().Str("output", string(output)).Msg("ffmpeg thumbnail extraction failed")
		return fmt.Errorf("ffmpeg thumbnail extraction failed: %w", err)
	}
	return nil
}
