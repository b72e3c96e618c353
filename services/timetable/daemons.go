package timetable

import (
	"context"
	"log/slog"

	"guems-backend/lib/chrono"
)

// StartSyncDaemon runs one sync cycle immediately and schedules a full
// cycle every 3 hours after that.
func (s Service) StartSyncDaemon(ctx context.Context, cron chrono.CronAPI) error {
	err := cron.Cron("@every 3h0m0s", func() {
		err := s.RunSyncCycle(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "sync cycle failed", "err", err)
		}
	})
	if err != nil {
		return err
	}

	go func() {
		err := s.RunSyncCycle(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "initial sync cycle failed", "err", err)
		}
	}()
	return nil
}
