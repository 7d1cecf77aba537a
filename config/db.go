package config

import (
	"context"
	"database/sql"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"
)

// PingDB verifies the database connection with exponential retry before the
// server starts taking uploads.
func PingDB(ctx context.Context, db *sql.DB) error {
	operation := func() (struct{}, error) {
		if err := db.PingContext(ctx); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to reach database. Retrying...")
			return struct{}{}, err
		}
		return struct{}{}, nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxInterval = 10 * time.Second
	maxRetries := uint(5)
	_, err := backoff.Retry(ctx, operation, backoff.WithBackOff(bo), backoff.WithMaxTries(maxRetries))
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().Msg("Successfully connected to database")
	return nil
}
