package timetable

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/codes"

	"guems-backend/lib/scrapers/icloudems"
	"guems-backend/lib/timezone"
	"guems-backend/services/timetable/db"
)

// sqliteTimeLayout is the canonical timestamp representation in the
// database. Lexicographic order matches chronological order so sqlite's
// datetime() comparisons behave.
const sqliteTimeLayout = "2006-01-02 15:04:05"

const sqliteDateLayout = "2006-01-02"

// ErrNoSlotIdentity reports that a slot upsert did not yield a row id,
// which would orphan every schedule entry referencing it.
var ErrNoSlotIdentity = errors.New("slot upsert returned no identity")

// Store reconciles scraped schedules into sqlite. Writes are grouped
// into one transaction per weekday so a malformed day never leaves a
// half-written batch behind.
type Store struct {
	db  *sql.DB
	qry *db.Queries
}

func NewStore(database *sql.DB) Store {
	return Store{
		db:  database,
		qry: db.New(database),
	}
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(sqliteTimeLayout), Valid: true}
}

func (s Store) upsertSlot(ctx context.Context, qry *db.Queries, slot icloudems.Slot) (int64, error) {
	id, err := qry.UpsertSlot(ctx, db.UpsertSlotParams{
		CourseName: slot.CourseName,
		CourseType: slot.CourseType,
		CourseCode: slot.CourseCode,
		Section:    slot.Section,
		Room:       slot.Room,
		Block:      slot.Block,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNoSlotIdentity
	}
	if err != nil {
		return 0, fmt.Errorf("upsert slot: %w", err)
	}
	return id, nil
}

// SaveWeek persists the primary weekly schedule. Re-saving the same
// week is a no-op thanks to the schedule's natural key.
func (s Store) SaveWeek(ctx context.Context, week icloudems.WeeklySchedule) error {
	ctx, span := tracer.Start(ctx, "store:SaveWeek")
	defer span.End()

	for _, day := range icloudems.Weekdays {
		entries := week[day]
		if len(entries) == 0 {
			continue
		}

		err := s.saveDay(ctx, entries)
		if err != nil {
			span.SetStatus(codes.Error, "failed to save day")
			return fmt.Errorf("save %s: %w", day, err)
		}
	}
	return nil
}

func (s Store) saveDay(ctx context.Context, entries []icloudems.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	for _, entry := range entries {
		slotId, err := s.upsertSlot(ctx, txqry, entry.Slot)
		if err != nil {
			return err
		}
		err = txqry.CreateTimetableEntry(ctx, db.CreateTimetableEntryParams{
			Date:        entry.Date.Format(sqliteDateLayout),
			Weekday:     entry.Weekday,
			StartTime:   nullTime(entry.StartTime),
			EndTime:     nullTime(entry.EndTime),
			FacultyName: entry.FacultyName,
			SlotID:      slotId,
			Class:       entry.Class,
		})
		if err != nil {
			return fmt.Errorf("create entry: %w", err)
		}
	}

	return tx.Commit()
}

// SaveReplacements persists the replacement schedule alongside the
// primary one.
func (s Store) SaveReplacements(ctx context.Context, replacements icloudems.ReplacementSchedule) error {
	ctx, span := tracer.Start(ctx, "store:SaveReplacements")
	defer span.End()

	for _, day := range icloudems.Weekdays {
		entries := replacements[day]
		if len(entries) == 0 {
			continue
		}

		err := s.saveReplacementDay(ctx, entries)
		if err != nil {
			span.SetStatus(codes.Error, "failed to save day")
			return fmt.Errorf("save %s replacements: %w", day, err)
		}
	}
	return nil
}

func (s Store) saveReplacementDay(ctx context.Context, entries []icloudems.ReplacementEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	for _, entry := range entries {
		slotId, err := s.upsertSlot(ctx, txqry, entry.Slot)
		if err != nil {
			return err
		}
		err = txqry.CreateAlternativeEntry(ctx, db.CreateAlternativeEntryParams{
			Date:                 entry.Date.Format(sqliteDateLayout),
			Weekday:              entry.Weekday,
			StartTime:            nullTime(entry.StartTime),
			EndTime:              nullTime(entry.EndTime),
			FacultyName:          entry.FacultyName,
			AlternateFacultyName: entry.AlternateFacultyName,
			SlotID:               slotId,
			Class:                entry.Class,
		})
		if err != nil {
			return fmt.Errorf("create replacement entry: %w", err)
		}
	}

	return tx.Commit()
}

// RetentionCutoff computes the purge threshold for a given instant:
// entries dated more than a week before it are expired. The cutoff is
// derived in UTC and shifted back into the portal's timezone to match
// the stored local timestamps.
func RetentionCutoff(now time.Time) string {
	return now.UTC().AddDate(0, 0, -7).Add(timezone.Offset).Format(sqliteTimeLayout)
}

// PurgeOlderThan removes every schedule entry whose start time is
// strictly before the cutoff, which must be formatted per
// sqliteTimeLayout. Entries without a start time are never purged.
func (s Store) PurgeOlderThan(ctx context.Context, cutoff string) error {
	ctx, span := tracer.Start(ctx, "store:PurgeOlderThan")
	defer span.End()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	primary, err := txqry.DeleteTimetableBefore(ctx, cutoff)
	if err != nil {
		span.SetStatus(codes.Error, "failed to purge timetable")
		return fmt.Errorf("purge timetable: %w", err)
	}
	alternative, err := txqry.DeleteAlternativeBefore(ctx, cutoff)
	if err != nil {
		span.SetStatus(codes.Error, "failed to purge alternative timetable")
		return fmt.Errorf("purge alternative timetable: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return err
	}

	slog.DebugContext(
		ctx, "purged expired schedule entries",
		"cutoff", cutoff,
		"primary", primary,
		"alternative", alternative,
	)
	return nil
}
