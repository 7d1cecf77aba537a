package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"vidshare/storage"
)

// PassthroughProcessor stores the upload unchanged: a byte-for-byte copy
// into processed storage under the already-unique raw name. No thumbnail.
type PassthroughProcessor struct {
	dirs storage.Dirs
}

func (p *PassthroughProcessor) Process(ctx context.Context, rawPath, base string) (Result, error) {
	name := filepath.Base(rawPath)
	dst := filepath.Join(p.dirs.Processed, name)

	if err := copyFile(rawPath, dst); err != nil {
		removePartial(ctx, dst)
		return Result{}, errors.Join(ErrProcessing, err)
	}

	removeRaw(ctx, rawPath)
	zerolog.Ctx(ctx).Debug().Str("file", name).Msg("stored upload without transcoding")

	return Result{
		ProcessedFilename: name,
		ProcessedPath:     dst,
	}, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open raw file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create processed file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy to processed storage: %w", err)
	}
	return out.Sync()
}
