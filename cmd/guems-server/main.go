package main

import (
	"flag"
	"time"

	"guems-backend/lib/chrono"
	"guems-backend/lib/configutil"
	"guems-backend/lib/serviceutil"
	"guems-backend/pkg/migrations"
	"guems-backend/services/timetable"
	timetabledb "guems-backend/services/timetable/db"
)

func main() {
	verbose := flag.Bool("v", false, "enable verbose logging")
	flag.Parse()

	ctx := serviceutil.SignalContext()
	InitTelemetry(ctx, *verbose)

	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if config.Port == 0 {
		config.Port = 8080
	}

	database, err := migrations.OpenAndSeedDB(timetabledb.Schema, config.Database)
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}

	service := timetable.NewService(database, timetable.ServiceOptions{
		Sessions: timetable.PortalSessions{
			BaseUrl: config.PortalBaseUrl,
		},
		FetchTimeout: time.Duration(config.Sync.FetchTimeoutSeconds) * time.Second,
	})

	cron := chrono.NewStandardCron()
	defer cron.Stop()
	err = service.StartSyncDaemon(ctx, cron)
	if err != nil {
		serviceutil.Fatal("failed to start sync daemon", err)
	}

	go serviceutil.StartHttpServer(config.Port, timetable.NewRouter(service))

	<-ctx.Done()
}
