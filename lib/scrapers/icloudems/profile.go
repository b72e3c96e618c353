package icloudems

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"guems-backend/lib/htmlutil"
	"guems-backend/lib/textutil"
)

// StudentProfile is the subset of the profile page the sync engine
// cares about: the roster join needs class and semester to group
// students into cohorts.
type StudentProfile struct {
	AdmissionNumber string
	FullName        string
	FatherName      string
	Dob             string
	Email           string
	Class           string
	Semester        string
	Section         int64
	RollNo          int64
}

// ParseProfilePage extracts the student profile from a profile page
// snapshot. Field labels are normalized to snake_case keys; a handful
// of labels carry punctuation on the portal and are looked up verbatim.
func ParseProfilePage(ctx context.Context, source string) (StudentProfile, error) {
	_, span := tracer.Start(ctx, "ParseProfilePage")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		return StudentProfile{}, fmt.Errorf("%w: %w", ErrMalformedPage, err)
	}

	fields := map[string]string{}
	doc.Find("div.profile-user-info, div.profile-info-row").Each(func(_ int, div *goquery.Selection) {
		name := htmlutil.CellText(div.Find("div.profile-info-name").First())
		value := htmlutil.CellText(div.Find("div.profile-info-value").First())
		if name == "" {
			return
		}
		key := strings.ReplaceAll(strings.ToLower(name), " ", "_")
		fields[key] = value
	})

	fullName := htmlutil.CellText(doc.Find("span.middle").First())
	if fullName == "" && len(fields) == 0 {
		return StudentProfile{}, fmt.Errorf("%w: no profile rows found", ErrMalformedPage)
	}

	rollNo, _ := strconv.ParseInt(textutil.CollapseSpaces(fields["roll_no"]), 10, 64)
	section, _ := strconv.ParseInt(textutil.CollapseSpaces(fields["section"]), 10, 64)

	return StudentProfile{
		AdmissionNumber: fields["admission_number"],
		FullName:        fullName,
		FatherName:      fields["father/guardian_name"],
		Dob:             fields["dob"],
		Email:           fields["email"],
		Class:           fields["class"],
		Semester:        fields["semester"],
		Section:         section,
		RollNo:          rollNo,
	}, nil
}
