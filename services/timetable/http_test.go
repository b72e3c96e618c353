package timetable

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"guems-backend/lib/testutil"
	"guems-backend/services/timetable/db"
)

func setupRouter(t *testing.T) (http.Handler, *fakeSessions, func()) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/timetable",
		DbSchema: db.Schema,
	})
	sessions := newFakeSessions()
	service := NewService(setup.DB, ServiceOptions{Sessions: sessions})
	return NewRouter(service), sessions, cleanup
}

func TestPingEndpoint(t *testing.T) {
	router, _, cleanup := setupRouter(t)
	defer cleanup()

	for _, path := range []string{"/", "/ping"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "pong")
	}
}

func TestCredentialEndpoints(t *testing.T) {
	router, _, cleanup := setupRouter(t)
	defer cleanup()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/credentials?admission_number=230160203001", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	body := strings.NewReader(`{"admission_number":"230160203001","password":"hunter2"}`)
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/credentials", body))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Inserted")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/credentials?admission_number=230160203001", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Found")

	rec = httptest.NewRecorder()
	body = strings.NewReader(`{"admission_number":"230160203001","password":"hunter3"}`)
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/credentials", body))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Updated")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/credentials?admission_number=230160203001", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Deleted")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/credentials?admission_number=230160203001", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetCredentialRejectsMalformedBody(t *testing.T) {
	router, sessions, cleanup := setupRouter(t)
	defer cleanup()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/credentials", strings.NewReader("{broken")))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, sessions.loginCount())
}

func TestTimetableEndpointValidatesAdmissionNumber(t *testing.T) {
	router, _, cleanup := setupRouter(t)
	defer cleanup()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/timetable?admission_number="+strings.Repeat("9", 20), nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/timetable/week?admission_number=230160203001", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTimetableEndpointEmptyForIdleStudent(t *testing.T) {
	router, _, cleanup := setupRouter(t)
	defer cleanup()

	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"admission_number":"230160203001","password":"hunter2"}`)
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/credentials", body))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/timetable?admission_number=230160203001", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"periods"`)
}
