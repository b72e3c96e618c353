package icloudems

import (
	"regexp"
	"strconv"
	"strings"
)

// The slot cell is free text like
//
//	"Database Management(TH)DB12345A A-203 PR 3"
//
// and is picked apart by a fixed sequence of passes. Each pass extracts
// one field and returns the remainder with the matched text removed, so
// later passes search a smaller buffer. The order of the passes is
// load-bearing: reordering them changes what the later, greedier
// patterns can match.
//
// No pass ever fails; a pattern that is absent simply leaves its field
// at the zero value. Callers must tolerate empty fields.

var (
	courseCodeRegex = regexp.MustCompile(`[A-Z0-9]{8}`)
	roomRegex       = regexp.MustCompile(`([A-Z])-[0-9]{3}`)
	sectionRegex    = regexp.MustCompile(`[0-9]+`)
)

// ParseSlot parses one raw slot cell. Section is 0 when no digit run
// remains after the other passes.
func ParseSlot(raw string) (Slot, SlotFlags) {
	var slot Slot
	var flags SlotFlags

	rem := strings.TrimSpace(raw)
	slot.CourseName, rem = parseCourseName(rem)
	slot.CourseType, rem = parseCourseType(rem)
	slot.CourseCode, rem = parseCourseCode(rem)
	slot.Room, slot.Block, rem = parseRoom(rem)
	flags.Practical, rem = parseMarker(rem, "PR")
	flags.Project, rem = parseMarker(rem, "PP")
	slot.Section, _ = parseSection(rem)

	return slot, flags
}

// cutFirst removes the first occurrence of sub anywhere in s. This is
// NOT necessarily the occurrence a pass matched on; when the same
// two-character sequence appears earlier in the buffer, the earlier one
// is deleted instead. The portal format happens to never trip over
// this, and downstream keys depend on the exact output, so the
// behavior is kept as is.
func cutFirst(s, sub string) string {
	if sub == "" {
		return s
	}
	i := strings.Index(s, sub)
	if i < 0 {
		return s
	}
	return s[:i] + s[i+len(sub):]
}

// parseCourseName takes everything before the first "(".
func parseCourseName(rem string) (string, string) {
	var name string
	if i := strings.Index(rem, "("); i >= 0 {
		name = strings.TrimSpace(rem[:i])
	} else if len(rem) > 0 {
		// no parenthesis: the trailing character is dropped, matching
		// how the portal renders nameless cells
		name = strings.TrimSpace(rem[:len(rem)-1])
	}
	return name, strings.TrimSpace(cutFirst(rem, name))
}

// parseCourseType takes the two characters immediately preceding the
// first ")".
func parseCourseType(rem string) (string, string) {
	i := strings.Index(rem, ")")
	if i < 2 {
		return "", rem
	}
	courseType := strings.TrimSpace(rem[i-2 : i])
	return courseType, strings.TrimSpace(cutFirst(rem, courseType))
}

func parseCourseCode(rem string) (string, string) {
	code := courseCodeRegex.FindString(rem)
	if code == "" {
		return "", rem
	}
	return code, strings.TrimSpace(cutFirst(rem, code))
}

// parseRoom matches a building-room token like "A-203"; room is the
// whole token and block the building letter.
func parseRoom(rem string) (room, block, out string) {
	rem = strings.ReplaceAll(rem, "GU_", "")
	m := roomRegex.FindStringSubmatch(rem)
	if m == nil {
		return "", "", rem
	}
	return m[0], m[1], strings.TrimSpace(cutFirst(rem, m[0]))
}

func parseMarker(rem, marker string) (bool, string) {
	if !strings.Contains(rem, marker) {
		return false, rem
	}
	return true, strings.TrimSpace(strings.ReplaceAll(rem, marker, ""))
}

// parseSection catches the remaining digit run.
func parseSection(rem string) (int64, string) {
	digits := sectionRegex.FindString(rem)
	if digits == "" {
		return 0, rem
	}
	section, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, rem
	}
	return section, strings.TrimSpace(cutFirst(rem, digits))
}
