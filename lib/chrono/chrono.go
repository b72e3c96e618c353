package chrono

// CronAPI is the interface that anything depending on things to happen
// on a schedule should use. Tests provide their own implementation and
// invoke the callback directly instead of waiting on wall-clock time.
type CronAPI interface {
	Cron(spec string, callback func()) error
}
