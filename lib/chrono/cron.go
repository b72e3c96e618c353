package chrono

import (
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"guems-backend/lib/timezone"
)

// StandardCron is the standard implementation of CronAPI using
// `github.com/robfig/cron/v3`, running in the portal's timezone.
type StandardCron struct {
	cron *cron.Cron
}

func NewStandardCron() StandardCron {
	cronner := cron.New(
		cron.WithLogger(cronLogger{}),
		cron.WithLocation(timezone.Location),
		// a slow job must never overlap with its next scheduled run
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{})),
	)
	cronner.Start()

	return StandardCron{
		cron: cronner,
	}
}

func (s StandardCron) Cron(spec string, callback func()) error {
	_, err := s.cron.AddFunc(spec, callback)
	return err
}

func (s StandardCron) Stop() {
	s.cron.Stop()
}

type cronLogger struct{}

func (l cronLogger) formatParams(keysAndValues []any) []any {
	params := []any{}
	for i := 0; i < len(keysAndValues)/2; i++ {
		idx := i * 2
		params = append(params, fmt.Sprintf("%v: %v", keysAndValues[idx], keysAndValues[idx+1]))
	}
	return params
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	slog.Debug(fmt.Sprintf("cron: %s", msg), "params", l.formatParams(keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	slog.Error(fmt.Sprintf("cron: %s", msg), "err", err, "params", l.formatParams(keysAndValues))
}
