package icloudems

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"guems-backend/lib/telemetry"
)

const profileFixture = `
<html><body>
<span class="middle">ANANYA SHARMA</span>
<div class="profile-user-info">
  <div class="profile-info-row">
    <div class="profile-info-name">Admission Number</div>
    <div class="profile-info-value">230160203001</div>
  </div>
  <div class="profile-info-row">
    <div class="profile-info-name">Father/Guardian Name</div>
    <div class="profile-info-value">RAKESH SHARMA</div>
  </div>
  <div class="profile-info-row">
    <div class="profile-info-name">DOB</div>
    <div class="profile-info-value">2005-04-12</div>
  </div>
  <div class="profile-info-row">
    <div class="profile-info-name">Email</div>
    <div class="profile-info-value">ananya@example.com</div>
  </div>
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
    <div class="profile-info-value"> 42 </div>
  </div>
</div>
</body></html>`

func TestParseProfilePage(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:scraper/icloudems")
	defer cleanup()

	profile, err := ParseProfilePage(context.Background(), profileFixture)
	require.NoError(t, err)

	require.Equal(t, "230160203001", profile.AdmissionNumber)
	require.Equal(t, "ANANYA SHARMA", profile.FullName)
	require.Equal(t, "RAKESH SHARMA", profile.FatherName)
	require.Equal(t, "2005-04-12", profile.Dob)
	require.Equal(t, "ananya@example.com", profile.Email)
	require.Equal(t, "BTECH CSE 5", profile.Class)
	require.Equal(t, "5", profile.Semester)
	require.Equal(t, int64(3), profile.Section)
	require.Equal(t, int64(42), profile.RollNo)
}

func TestParseProfilePageRejectsEmptyPage(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:scraper/icloudems")
	defer cleanup()

	_, err := ParseProfilePage(context.Background(), "<html><body></body></html>")
	require.ErrorIs(t, err, ErrMalformedPage)
}
