package icloudems

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"

	"guems-backend/lib/htmlutil"
	"guems-backend/lib/timezone"
)

// ErrMalformedPage wraps every extraction failure so callers can treat
// a broken page as one error class.
var ErrMalformedPage = errors.New("malformed timetable page")

const headerDateLayout = "2 Jan 2006"
const replacementDateLayout = "2006-01-02"

// ParseTimetablePage extracts the primary weekly schedule and the
// replacement schedule from a timetable report page snapshot.
func ParseTimetablePage(ctx context.Context, source string) (TimetablePage, error) {
	_, span := tracer.Start(ctx, "ParseTimetablePage")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse html")
		return TimetablePage{}, fmt.Errorf("%w: %w", ErrMalformedPage, err)
	}

	tables := doc.Find("table")
	if tables.Length() < 3 {
		span.SetStatus(codes.Error, "missing tables")
		return TimetablePage{}, fmt.Errorf("%w: expected 3 tables, found %d", ErrMalformedPage, tables.Length())
	}

	header := htmlutil.CellText(tables.Eq(0).Find("thead tr").First())
	class, dates, err := parseHeader(ctx, header)
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse header")
		return TimetablePage{}, err
	}

	week, err := parseWeekRows(tables.Eq(2), dates, class)
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse weekly schedule")
		return TimetablePage{}, err
	}
	replacements, err := parseReplacementRows(tables.Eq(1), class)
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse replacement schedule")
		return TimetablePage{}, err
	}

	return TimetablePage{
		Class:        class,
		Week:         week,
		Replacements: replacements,
	}, nil
}

// parseHeader resolves the class name and reconstructs a calendar date
// for each weekday from the header's "DD Mon YYYY To DD Mon YYYY" span.
//
// Mon through Sat map to start+0..5 days. Sun maps to the LITERAL end
// date of the span, not start+6: this is the published contract of the
// page, so a span that is not exactly 7 days long is flagged and the
// mapping kept.
func parseHeader(ctx context.Context, header string) (string, map[string]time.Time, error) {
	segments := strings.Split(header, "/")

	classSegments := strings.Split(segments[0], "for")
	class := strings.TrimSpace(classSegments[len(classSegments)-1])

	// " Date : 18 Dec 2023 To 24 Dec 2023"
	rawRange := segments[len(segments)-1]
	if i := strings.Index(rawRange, ":"); i >= 0 {
		rawRange = rawRange[i+1:]
	}
	rawStart, rawEnd, found := strings.Cut(rawRange, "To")
	if !found {
		return "", nil, fmt.Errorf("%w: no date span in header %q", ErrMalformedPage, header)
	}

	start, err := time.ParseInLocation(headerDateLayout, strings.TrimSpace(rawStart), timezone.Location)
	if err != nil {
		return "", nil, fmt.Errorf("%w: span start: %w", ErrMalformedPage, err)
	}
	end, err := time.ParseInLocation(headerDateLayout, strings.TrimSpace(rawEnd), timezone.Location)
	if err != nil {
		return "", nil, fmt.Errorf("%w: span end: %w", ErrMalformedPage, err)
	}

	if !end.Equal(start.AddDate(0, 0, 6)) {
		slog.WarnContext(
			ctx, "header date span is not a 7 day week",
			"start", start.Format(headerDateLayout),
			"end", end.Format(headerDateLayout),
		)
	}

	return class, map[string]time.Time{
		"Mon": start,
		"Tue": start.AddDate(0, 0, 1),
		"Wed": start.AddDate(0, 0, 2),
		"Thu": start.AddDate(0, 0, 3),
		"Fri": start.AddDate(0, 0, 4),
		"Sat": start.AddDate(0, 0, 5),
		"Sun": end,
	}, nil
}

func emptyWeek() map[string][]Entry {
	week := make(map[string][]Entry, len(Weekdays))
	for _, day := range Weekdays {
		week[day] = []Entry{}
	}
	return week
}

func parseWeekRows(table *goquery.Selection, dates map[string]time.Time, class string) (WeeklySchedule, error) {
	week := WeeklySchedule(emptyWeek())

	var rowErr error
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 || rowErr != nil {
			return
		}
		cells := htmlutil.RowCells(tr)
		if len(cells) < 4 {
			rowErr = fmt.Errorf("%w: schedule row has %d cells", ErrMalformedPage, len(cells))
			return
		}

		day := cells[0]
		if !validWeekday(day) {
			rowErr = fmt.Errorf("%w: unrecognized weekday %q", ErrMalformedPage, day)
			return
		}

		date := dates[day]
		start, end, err := parseTimeRange(cells[1], date)
		if err != nil {
			rowErr = err
			return
		}

		slot, _ := ParseSlot(cells[3])
		week[day] = append(week[day], Entry{
			Date:        date,
			Weekday:     day,
			StartTime:   start,
			EndTime:     end,
			FacultyName: cells[2],
			Slot:        slot,
			Class:       class,
		})
	})
	if rowErr != nil {
		return nil, rowErr
	}

	return week, nil
}

func parseReplacementRows(table *goquery.Selection, class string) (ReplacementSchedule, error) {
	replacements := make(ReplacementSchedule, len(Weekdays))
	for _, day := range Weekdays {
		replacements[day] = []ReplacementEntry{}
	}

	var rowErr error
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 || rowErr != nil {
			return
		}
		cells := htmlutil.RowCells(tr)
		if len(cells) < 6 {
			rowErr = fmt.Errorf("%w: replacement row has %d cells", ErrMalformedPage, len(cells))
			return
		}

		day := cells[0]
		if !validWeekday(day) {
			rowErr = fmt.Errorf("%w: unrecognized weekday %q", ErrMalformedPage, day)
			return
		}

		// the replacement table carries its date literally per row
		date, err := time.ParseInLocation(replacementDateLayout, cells[1], timezone.Location)
		if err != nil {
			rowErr = fmt.Errorf("%w: replacement date: %w", ErrMalformedPage, err)
			return
		}

		start, end, err := parseTimeRange(cells[2], date)
		if err != nil {
			rowErr = err
			return
		}

		slot, _ := ParseSlot(cells[5])
		replacements[day] = append(replacements[day], ReplacementEntry{
			Entry: Entry{
				Date:        date,
				Weekday:     day,
				StartTime:   start,
				EndTime:     end,
				FacultyName: cells[3],
				Slot:        slot,
				Class:       class,
			},
			AlternateFacultyName: cells[4],
		})
	})
	if rowErr != nil {
		return nil, rowErr
	}

	return replacements, nil
}

// parseTimeRange splits a "HH:MM-HH:MM" cell. Either side may be
// blank, which yields a nil timestamp for that side; a present side is
// combined with the row's date.
func parseTimeRange(cell string, date time.Time) (*time.Time, *time.Time, error) {
	rawStart, rawEnd, found := strings.Cut(cell, "-")
	if !found {
		return nil, nil, fmt.Errorf("%w: malformed time range %q", ErrMalformedPage, cell)
	}

	start, err := parseClock(rawStart, date)
	if err != nil {
		return nil, nil, err
	}
	end, err := parseClock(rawEnd, date)
	if err != nil {
		return nil, nil, err
	}
	return start, end, nil
}

func parseClock(raw string, date time.Time) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	rawHours, rawMinutes, found := strings.Cut(raw, ":")
	if !found {
		return nil, fmt.Errorf("%w: malformed clock %q", ErrMalformedPage, raw)
	}
	hours, err := strconv.Atoi(strings.TrimSpace(rawHours))
	if err != nil {
		return nil, fmt.Errorf("%w: malformed clock %q", ErrMalformedPage, raw)
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(rawMinutes))
	if err != nil {
		return nil, fmt.Errorf("%w: malformed clock %q", ErrMalformedPage, raw)
	}

	t := date.Add(time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute)
	return &t, nil
}
