package timetable

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"guems-backend/lib/scrapers/icloudems"
	"guems-backend/services/timetable/db"
)

// the portal rejects longer logins, catch them before wasting a session
const maxAdmissionNumberLen = 14

var ErrInvalidAdmissionNumber = errors.New("admission number is empty or too long")
var ErrCredentialNotFound = errors.New("no credential stored for this admission number")

// Session is a logged-in portal session that can serve page downloads.
type Session interface {
	DownloadPageSource(ctx context.Context, target icloudems.PageTarget) (string, error)
	Close() error
}

// SessionProvider opens portal sessions. Tests substitute a fake so
// nothing talks to the real portal.
type SessionProvider interface {
	Login(ctx context.Context, admissionNumber, password string) (Session, error)
}

type ServiceOptions struct {
	Sessions SessionProvider
	// FetchTimeout bounds a single login+download round trip against
	// the portal. Defaults to 5 minutes.
	FetchTimeout time.Duration
}

type Service struct {
	db    *sql.DB
	qry   *db.Queries
	store Store

	ServiceOptions
}

func NewService(database *sql.DB, options ServiceOptions) Service {
	if options.FetchTimeout <= 0 {
		options.FetchTimeout = time.Minute * 5
	}
	return Service{
		db:             database,
		qry:            db.New(database),
		store:          NewStore(database),
		ServiceOptions: options,
	}
}

func validateAdmissionNumber(admissionNumber string) error {
	if admissionNumber == "" || len(admissionNumber) > maxAdmissionNumberLen {
		return fmt.Errorf("%w: %q", ErrInvalidAdmissionNumber, admissionNumber)
	}
	return nil
}

// SetCredential verifies the credential against the portal, stores it
// and refreshes the student's profile. An already-registered student
// has their password and profile replaced.
func (s Service) SetCredential(ctx context.Context, admissionNumber, password string) error {
	ctx, span := tracer.Start(ctx, "SetCredential")
	defer span.End()
	span.SetAttributes(attribute.String("admission_number", admissionNumber))

	err := validateAdmissionNumber(admissionNumber)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	_, err = s.RefreshProfile(ctx, admissionNumber, password)
	if err != nil {
		span.SetStatus(codes.Error, "failed to verify credential")
		return err
	}

	_, err = s.qry.CreateCredential(ctx, db.CreateCredentialParams{
		AdmissionNumber: admissionNumber,
		Password:        password,
	})
	if errors.Is(err, sql.ErrNoRows) {
		err = s.qry.UpdateCredential(ctx, db.UpdateCredentialParams{
			Password:        password,
			AdmissionNumber: admissionNumber,
		})
	}
	if err != nil {
		span.SetStatus(codes.Error, "failed to store credential")
		return fmt.Errorf("store credential: %w", err)
	}

	return nil
}

// HasCredential reports whether a credential is registered for the
// given admission number. The password itself is never exposed.
func (s Service) HasCredential(ctx context.Context, admissionNumber string) (bool, error) {
	ctx, span := tracer.Start(ctx, "HasCredential")
	defer span.End()

	_, err := s.qry.GetCredential(ctx, admissionNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteCredential forgets a student's credential and profile.
func (s Service) DeleteCredential(ctx context.Context, admissionNumber string) error {
	ctx, span := tracer.Start(ctx, "DeleteCredential")
	defer span.End()
	span.SetAttributes(attribute.String("admission_number", admissionNumber))

	rows, err := s.qry.DeleteCredential(ctx, admissionNumber)
	if err != nil {
		span.SetStatus(codes.Error, "failed to delete credential")
		return err
	}
	if rows == 0 {
		span.SetStatus(codes.Error, ErrCredentialNotFound.Error())
		return ErrCredentialNotFound
	}

	return s.qry.DeleteStudent(ctx, admissionNumber)
}

// RefreshProfile logs into the portal, scrapes the student's profile
// page and reconciles the students table with what it finds.
func (s Service) RefreshProfile(ctx context.Context, admissionNumber, password string) (icloudems.StudentProfile, error) {
	ctx, span := tracer.Start(ctx, "RefreshProfile")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.FetchTimeout)
	defer cancel()

	session, err := s.Sessions.Login(ctx, admissionNumber, password)
	if err != nil {
		span.SetStatus(codes.Error, "login failed")
		return icloudems.StudentProfile{}, err
	}
	defer session.Close()

	source, err := session.DownloadPageSource(ctx, icloudems.PageProfile)
	if err != nil {
		span.SetStatus(codes.Error, "failed to download profile page")
		return icloudems.StudentProfile{}, err
	}
	profile, err := icloudems.ParseProfilePage(ctx, source)
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse profile page")
		return icloudems.StudentProfile{}, err
	}
	// the login is authoritative for identity, the page is not
	profile.AdmissionNumber = admissionNumber

	err = s.qry.UpsertStudent(ctx, db.UpsertStudentParams{
		AdmissionNumber: profile.AdmissionNumber,
		FullName:        profile.FullName,
		FatherName:      profile.FatherName,
		Dob:             profile.Dob,
		Email:           profile.Email,
		Class:           profile.Class,
		Semester:        profile.Semester,
		Section:         profile.Section,
		RollNo:          profile.RollNo,
	})
	if err != nil {
		span.SetStatus(codes.Error, "failed to store profile")
		return icloudems.StudentProfile{}, fmt.Errorf("store profile: %w", err)
	}

	slog.InfoContext(
		ctx, "refreshed student profile",
		"admission_number", admissionNumber,
		"class", profile.Class,
		"semester", profile.Semester,
	)
	return profile, nil
}

// Period is one resolved schedule entry joined with its slot.
type Period struct {
	Date        string  `json:"date"`
	Weekday     string  `json:"weekday"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	FacultyName string  `json:"faculty_name"`
	Class       string  `json:"class"`
	CourseName  string  `json:"course_name"`
	CourseType  string  `json:"course_type"`
	CourseCode  string  `json:"course_code"`
	Section     int64   `json:"section"`
	Room        string  `json:"room"`
	Block       string  `json:"block"`
}

func nullToPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	return &value.String
}

// Timetable returns every stored schedule entry for the student's
// class, ordered by date and start time.
func (s Service) Timetable(ctx context.Context, admissionNumber string) ([]Period, error) {
	ctx, span := tracer.Start(ctx, "Timetable")
	defer span.End()

	student, err := s.qry.GetStudent(ctx, admissionNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCredentialNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.qry.GetTimetableForClass(ctx, student.Class)
	if err != nil {
		span.SetStatus(codes.Error, "failed to query timetable")
		return nil, err
	}

	periods := make([]Period, len(rows))
	for i, row := range rows {
		periods[i] = Period{
			Date:        row.Date,
			Weekday:     row.Weekday,
			StartTime:   nullToPtr(row.StartTime),
			EndTime:     nullToPtr(row.EndTime),
			FacultyName: row.FacultyName,
			Class:       row.Class,
			CourseName:  row.CourseName,
			CourseType:  row.CourseType,
			CourseCode:  row.CourseCode,
			Section:     row.Section,
			Room:        row.Room,
			Block:       row.Block,
		}
	}
	return periods, nil
}

// CurrentPeriod resolves the schedule entries in progress for the
// student's class at the given instant, which must be in the portal's
// timezone.
func (s Service) CurrentPeriod(ctx context.Context, admissionNumber string, now time.Time) ([]Period, error) {
	ctx, span := tracer.Start(ctx, "CurrentPeriod")
	defer span.End()

	rows, err := s.qry.GetCurrentPeriod(ctx, db.GetCurrentPeriodParams{
		AdmissionNumber: admissionNumber,
		Now:             now.Format(sqliteTimeLayout),
	})
	if err != nil {
		span.SetStatus(codes.Error, "failed to query current period")
		return nil, err
	}

	periods := make([]Period, len(rows))
	for i, row := range rows {
		periods[i] = Period{
			Date:        row.Date,
			Weekday:     row.Weekday,
			StartTime:   nullToPtr(row.StartTime),
			EndTime:     nullToPtr(row.EndTime),
			FacultyName: row.FacultyName,
			Class:       row.Class,
			CourseName:  row.CourseName,
			CourseType:  row.CourseType,
			CourseCode:  row.CourseCode,
			Section:     row.Section,
			Room:        row.Room,
			Block:       row.Block,
		}
	}
	return periods, nil
}
