package timetable

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"guems-backend/lib/scrapers/icloudems"
	"guems-backend/lib/testutil"
	"guems-backend/lib/timezone"
	"guems-backend/services/timetable/db"
)

const profilePageFixture = `
<html><body>
<span class="middle">ANANYA SHARMA</span>
<div class="profile-user-info">
  <div class="profile-info-row">
    <div class="profile-info-name">Class</div>
    <div class="profile-info-value">BTECH CSE 5</div>
  </div>
  <div class="profile-info-row">
    <div class="profile-info-name">Semester</div>
    <div class="profile-info-value">5</div>
  </div>
  <div class="profile-info-row">
    <div class="profile-info-name">Section</div>
    <div class="profile-info-value">3</div>
  </div>
  <div class="profile-info-row">
    <div class="profile-info-name">Roll No</div>
    <div class="profile-info-value">42</div>
  </div>
</div>
</body></html>`

// weeklyFixture builds a timetable page for the week containing now so
// the entries it yields land inside the retention window.
func weeklyFixture() string {
	now := timezone.Now()
	monday := now.AddDate(0, 0, -int((now.Weekday()+6)%7))
	monday = time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, timezone.Location)
	sunday := monday.AddDate(0, 0, 6)

	return fmt.Sprintf(`
<html><body>
<table>
  <thead><tr><th>Weekly Time Table for BTECH CSE 5 / Date : %s To %s</th></tr></thead>
</table>
<table>
  <tr><th>Day</th><th>Date</th><th>Time</th><th>Faculty</th><th>Alternate Faculty</th><th>Slot</th></tr>
  <tr><td>Wed</td><td>%s</td><td>14:00-14:55</td><td>DR. ARJUN RAO</td><td>DR. P. NAIR</td><td>Operating Systems(PR)OS54321B B-101 3</td></tr>
</table>
<table>
  <tr><th>Day</th><th>Time</th><th>Faculty</th><th>Slot</th></tr>
  <tr><td>Mon</td><td>09:00-09:55</td><td>DR. MEENA KUMARI</td><td>Database Management(TH)DB12345A A-203 3</td></tr>
  <tr><td>Wed</td><td>11:00-11:55</td><td>DR. ARJUN RAO</td><td>Operating Systems(TH)OS54321B B-101 3</td></tr>
</table>
</body></html>`,
		monday.Format("2 Jan 2006"),
		sunday.Format("2 Jan 2006"),
		monday.AddDate(0, 0, 2).Format("2006-01-02"),
	)
}

type fakeSession struct {
	pages map[icloudems.PageTarget]string
}

func (f fakeSession) DownloadPageSource(ctx context.Context, target icloudems.PageTarget) (string, error) {
	return f.pages[target], nil
}

func (f fakeSession) Close() error {
	return nil
}

type fakeSessions struct {
	mu     sync.Mutex
	pages  map[icloudems.PageTarget]string
	fail   map[string]error
	logins []string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{
		pages: map[icloudems.PageTarget]string{
			icloudems.PageProfile:   profilePageFixture,
			icloudems.PageTimetable: weeklyFixture(),
		},
		fail: map[string]error{},
	}
}

func (f *fakeSessions) Login(ctx context.Context, admissionNumber, password string) (Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.fail[admissionNumber]; err != nil {
		return nil, err
	}
	f.logins = append(f.logins, admissionNumber)
	return fakeSession{pages: f.pages}, nil
}

func (f *fakeSessions) loginCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.logins)
}

func TestSetCredentialInsertAndUpdate(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/timetable",
		DbSchema: db.Schema,
	})
	defer cleanup()

	sessions := newFakeSessions()
	service := NewService(setup.DB, ServiceOptions{Sessions: sessions})
	ctx := context.Background()

	found, err := service.HasCredential(ctx, "230160203001")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, service.SetCredential(ctx, "230160203001", "hunter2"))

	found, err = service.HasCredential(ctx, "230160203001")
	require.NoError(t, err)
	require.True(t, found)

	student, err := db.New(setup.DB).GetStudent(ctx, "230160203001")
	require.NoError(t, err)
	require.Equal(t, "BTECH CSE 5", student.Class)
	require.Equal(t, "5", student.Semester)
	require.Equal(t, int64(3), student.Section)

	// a second registration replaces the password instead of failing
	require.NoError(t, service.SetCredential(ctx, "230160203001", "hunter3"))

	credential, err := db.New(setup.DB).GetCredential(ctx, "230160203001")
	require.NoError(t, err)
	require.Equal(t, "hunter3", credential.Password)

	var count int64
	require.NoError(t, setup.DB.QueryRow("SELECT count(*) FROM students_credentials").Scan(&count))
	require.Equal(t, int64(1), count)
}

func TestSetCredentialRejectsBadAdmissionNumber(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/timetable",
		DbSchema: db.Schema,
	})
	defer cleanup()

	sessions := newFakeSessions()
	service := NewService(setup.DB, ServiceOptions{Sessions: sessions})
	ctx := context.Background()

	err := service.SetCredential(ctx, strings.Repeat("9", maxAdmissionNumberLen+1), "hunter2")
	require.ErrorIs(t, err, ErrInvalidAdmissionNumber)

	err = service.SetCredential(ctx, "", "hunter2")
	require.ErrorIs(t, err, ErrInvalidAdmissionNumber)

	// validation must fire before any portal round trip
	require.Zero(t, sessions.loginCount())
}

func TestSetCredentialRejectedByPortal(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/timetable",
		DbSchema: db.Schema,
	})
	defer cleanup()

	sessions := newFakeSessions()
	sessions.fail["230160203001"] = icloudems.ErrInvalidCredentials
	service := NewService(setup.DB, ServiceOptions{Sessions: sessions})
	ctx := context.Background()

	err := service.SetCredential(ctx, "230160203001", "wrong")
	require.ErrorIs(t, err, icloudems.ErrInvalidCredentials)

	found, err := service.HasCredential(ctx, "230160203001")
	require.NoError(t, err)
	require.False(t, found)
}

func TestDeleteCredential(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/timetable",
		DbSchema: db.Schema,
	})
	defer cleanup()

	sessions := newFakeSessions()
	service := NewService(setup.DB, ServiceOptions{Sessions: sessions})
	ctx := context.Background()

	require.NoError(t, service.SetCredential(ctx, "230160203001", "hunter2"))
	require.NoError(t, service.DeleteCredential(ctx, "230160203001"))

	found, err := service.HasCredential(ctx, "230160203001")
	require.NoError(t, err)
	require.False(t, found)

	_, err = db.New(setup.DB).GetStudent(ctx, "230160203001")
	require.Error(t, err)

	err = service.DeleteCredential(ctx, "230160203001")
	require.ErrorIs(t, err, ErrCredentialNotFound)
}

func TestCurrentPeriod(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/timetable",
		DbSchema: db.Schema,
	})
	defer cleanup()

	sessions := newFakeSessions()
	service := NewService(setup.DB, ServiceOptions{Sessions: sessions})
	ctx := context.Background()

	require.NoError(t, service.SetCredential(ctx, "230160203001", "hunter2"))

	date := time.Date(2023, 12, 18, 0, 0, 0, 0, timezone.Location)
	week := weekWithEntry(icloudems.Entry{
		Date: date, Weekday: "Mon",
		StartTime: clockPtr(date, 9, 0), EndTime: clockPtr(date, 9, 55),
		FacultyName: "DR. MEENA KUMARI",
		Slot:        icloudems.Slot{CourseName: "Database Management", CourseType: "TH", CourseCode: "DB12345A", Section: 3, Room: "A-203", Block: "A"},
		Class:       "BTECH CSE 5",
	})
	require.NoError(t, service.store.SaveWeek(ctx, week))

	periods, err := service.CurrentPeriod(ctx, "230160203001", date.Add(time.Hour*9+time.Minute*30))
	require.NoError(t, err)
	require.Len(t, periods, 1)
	require.Equal(t, "Database Management", periods[0].CourseName)
	require.Equal(t, "DR. MEENA KUMARI", periods[0].FacultyName)

	// the window is [start, end): the end minute itself is off-period
	periods, err = service.CurrentPeriod(ctx, "230160203001", date.Add(time.Hour*9+time.Minute*55))
	require.NoError(t, err)
	require.Empty(t, periods)

	periods, err = service.CurrentPeriod(ctx, "230160203001", date.Add(time.Hour*12))
	require.NoError(t, err)
	require.Empty(t, periods)
}

func TestTimetableForStudent(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/timetable",
		DbSchema: db.Schema,
	})
	defer cleanup()

	sessions := newFakeSessions()
	service := NewService(setup.DB, ServiceOptions{Sessions: sessions})
	ctx := context.Background()

	_, err := service.Timetable(ctx, "230160203001")
	require.ErrorIs(t, err, ErrCredentialNotFound)

	require.NoError(t, service.SetCredential(ctx, "230160203001", "hunter2"))
	require.NoError(t, service.RunSyncCycle(ctx))

	periods, err := service.Timetable(ctx, "230160203001")
	require.NoError(t, err)
	require.Len(t, periods, 2)
	require.Equal(t, "Database Management", periods[0].CourseName)
	require.Equal(t, "Operating Systems", periods[1].CourseName)
}
