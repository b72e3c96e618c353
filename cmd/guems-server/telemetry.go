package main

import (
	"context"
	"log/slog"

	"guems-backend/lib/telemetry"
)

func InitTelemetry(ctx context.Context, verbose bool) {
	telemetry.InitSlog(verbose)

	err := telemetry.SetupFromEnv(ctx, "guems-server")
	if err != nil {
		slog.Warn("telemetry disabled", "err", err)
		return
	}
	go func() {
		<-ctx.Done()
		err := telemetry.Shutdown(context.Background())
		if err != nil {
			slog.Error("failed to shut down telemetry", "err", err)
		}
	}()

	telemetry.InstrumentPerfStats(ctx)
}
