package timetable

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"guems-backend/lib/scrapers/icloudems"
	"guems-backend/lib/timezone"
	"guems-backend/services/timetable/db"
)

// CohortKey identifies a group of students sharing one timetable. One
// scrape per cohort per cycle is enough, whoever logs in first.
type CohortKey struct {
	Class    string
	Semester string
	Section  int64
}

// RunSyncCycle walks the registered roster, scrapes each distinct
// cohort's timetable once and expires entries older than the retention
// window. A failing cohort is logged and skipped so the rest of the
// roster still syncs; the next member of that cohort gets a try.
func (s Service) RunSyncCycle(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "RunSyncCycle")
	defer span.End()

	roster, err := s.qry.GetRoster(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "failed to query roster")
		return fmt.Errorf("query roster: %w", err)
	}

	synced := map[CohortKey]bool{}
	for _, member := range roster {
		key := CohortKey{
			Class:    member.Class,
			Semester: member.Semester,
			Section:  member.Section,
		}
		if synced[key] {
			continue
		}

		err := s.syncCohort(ctx, member)
		if err != nil {
			slog.WarnContext(
				ctx, "failed to sync cohort",
				"admission_number", member.AdmissionNumber,
				"class", member.Class,
				"semester", member.Semester,
				"section", member.Section,
				"err", err,
			)
			continue
		}
		synced[key] = true
	}

	slog.InfoContext(
		ctx, "sync cycle complete",
		"roster", len(roster),
		"cohorts", len(synced),
	)
	return nil
}

func (s Service) syncCohort(ctx context.Context, member db.GetRosterRow) error {
	ctx, span := tracer.Start(ctx, "syncCohort")
	defer span.End()
	span.SetAttributes(
		attribute.String("class", member.Class),
		attribute.String("semester", member.Semester),
		attribute.Int64("section", member.Section),
	)

	ctx, cancel := context.WithTimeout(ctx, s.FetchTimeout)
	defer cancel()

	session, err := s.Sessions.Login(ctx, member.AdmissionNumber, member.Password)
	if err != nil {
		span.SetStatus(codes.Error, "login failed")
		return fmt.Errorf("login: %w", err)
	}
	defer session.Close()

	source, err := session.DownloadPageSource(ctx, icloudems.PageTimetable)
	if err != nil {
		span.SetStatus(codes.Error, "failed to download timetable page")
		return fmt.Errorf("download timetable: %w", err)
	}
	page, err := icloudems.ParseTimetablePage(ctx, source)
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse timetable page")
		return err
	}

	// the new writes and the retention purge target disjoint key
	// ranges, so their interleaving does not matter
	var wg sync.WaitGroup
	var weekErr, replacementErr, purgeErr error

	wg.Add(3)
	go func() {
		defer wg.Done()
		weekErr = s.store.SaveWeek(ctx, page.Week)
	}()
	go func() {
		defer wg.Done()
		replacementErr = s.store.SaveReplacements(ctx, page.Replacements)
	}()
	go func() {
		defer wg.Done()
		purgeErr = s.store.PurgeOlderThan(ctx, RetentionCutoff(timezone.Now()))
	}()
	wg.Wait()

	return errors.Join(weekErr, replacementErr, purgeErr)
}
