package service

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"vidshare/constant"
	"vidshare/storage"
)

// Result references the assets a processor produced. Paths are absolute on
// disk; thumbnail fields are empty when the strategy generates none.
type Result struct {
	ProcessedFilename string
	ProcessedPath     string
	ThumbnailFilename string
	ThumbnailPath     string
}

// Processor turns one raw upload into a servable asset. The strategy is a
// deployment-time choice, not a request-time one.
type Processor interface {
	Process(ctx context.Context, rawPath, base string) (Result, error)
}

func NewProcessor(strategy constant.Strategy, dirs storage.Dirs) Processor {
	if strategy == constant.StrategyTranscode {
		return &TranscodeProcessor{dirs: dirs}
	}
	return &PassthroughProcessor{dirs: dirs}
}

// removeRaw drops the transient original after processing settles.
func removeRaw(ctx context.Context, rawPath string) {
	if err := os.Remove(rawPath); err != nil && !os.IsNotExist(err) {
		zerolog.Ctx(ctx).Warn().Err(err).Str("path", rawPath).Msg("failed to remove raw upload")
	}
}

func removePartial(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		zerolog.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("failed to remove partial output")
	}
}
