package icloudems

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"guems-backend/lib/telemetry"
)

func TestDownloadPageSourceRequiresLogin(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:scraper/icloudems")
	defer cleanup()

	client, err := NewClient(ClientOptions{
		BaseUrl:         "http://127.0.0.1:1",
		AdmissionNumber: "230160203001",
		Password:        "hunter2",
	})
	require.NoError(t, err)
	defer client.Close()

	_, err = client.DownloadPageSource(context.Background(), PageTimetable)
	require.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestLoginReplaysHiddenFieldsAndDetectsRejection(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:scraper/icloudems")
	defer cleanup()

	var posted url.Values
	mux := http.NewServeMux()
	mux.HandleFunc("/corecampus/index.php", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<form>
			<input type="hidden" name="csrf" value="tok123">
			<input type="text" name="useriid">
		</form>`))
	})
	mux.HandleFunc("/corecampus/student/validation.php", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		posted = r.PostForm
		w.Write([]byte("Invalid username or password"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := NewClient(ClientOptions{
		BaseUrl:         server.URL,
		AdmissionNumber: "230160203001",
		Password:        "hunter2",
	})
	require.NoError(t, err)
	defer client.Close()

	err = client.Login(context.Background())
	require.ErrorIs(t, err, ErrInvalidCredentials)

	require.Equal(t, "tok123", posted.Get("csrf"))
	require.Equal(t, "230160203001", posted.Get("useriid"))
	require.Equal(t, "hunter2", posted.Get("passwrd"))

	_, err = client.DownloadPageSource(context.Background(), PageTimetable)
	require.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestLoginThenDownloadPageSource(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:scraper/icloudems")
	defer cleanup()

	mux := http.NewServeMux()
	mux.HandleFunc("/corecampus/index.php", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<form><input type="hidden" name="csrf" value="tok123"></form>`))
	})
	mux.HandleFunc("/corecampus/student/validation.php", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Welcome"))
	})
	mux.HandleFunc("/schedulerand/tt_report_view.php", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>timetable</html>"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := NewClient(ClientOptions{
		BaseUrl:         server.URL,
		AdmissionNumber: "230160203001",
		Password:        "hunter2",
	})
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Login(context.Background()))

	source, err := client.DownloadPageSource(context.Background(), PageTimetable)
	require.NoError(t, err)
	require.Contains(t, source, "timetable")
}
