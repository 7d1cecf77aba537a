package service

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"vidshare/repository"
	"vidshare/storage"
)

// Sweeper implements full-wipe retention: every file in every storage
// directory and every metadata row, unconditionally. The two phases are not
// transactional with each other; a sweep racing an in-flight upload is an
// accepted hazard of this design.
type Sweeper struct {
	repo repository.VideoRepository
	dirs storage.Dirs
}

func NewSweeper(repo repository.VideoRepository, dirs storage.Dirs) *Sweeper {
	return &Sweeper{
		repo: repo,
		dirs: dirs,
	}
}

// Schedule starts the recurring sweep on the given cron expression in the
// given location. The caller owns the returned cron and stops it on
// shutdown.
func (s *Sweeper) Schedule(ctx context.Context, spec string, loc *time.Location) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(loc))
	_, err := c.AddFunc(spec, func() {
		s.Sweep(ctx)
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	zerolog.Ctx(ctx).Info().Str("schedule", spec).Str("timezone", loc.String()).Msg("retention sweeper scheduled")
	return c, nil
}

// Sweep wipes files first, rows second. Individual file failures are logged
// and do not abort the rest of the sweep.
func (s *Sweeper) Sweep(ctx context.Context) error {
	log := zerolog.Ctx(ctx)
	log.Info().Msg("retention sweep started")

	removed := 0
	for _, dir := range s.dirs.All() {
		entries, err := os.ReadDir(dir)
		if err != nil {
			log.Error().Err(err).Str("dir", dir).Msg("failed to read storage directory")
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			if err := os.Remove(path); err != nil {
				log.Error().Err(err).Str("path", path).Msg("failed to remove file during sweep")
				continue
			}
			removed++
		}
	}

	if err := s.repo.DeleteAll(ctx); err != nil {
		log.Error().Err(err).Msg("failed to delete video records during sweep")
		return err
	}

	log.Info().Int("files_removed", removed).Msg("retention sweep complete")
	return nil
}
