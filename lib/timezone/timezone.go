package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		panic(err)
	}
}

// force timezone to IST because the portal publishes wall-clock
// timestamps without any offset, and our servers are not guaranteed
// to run in India. date arithmetic on <time.Time>.Year()/Month()/Day()
// must happen in the portal's timezone.
func Now() time.Time {
	return time.Now().In(Location)
}

// Offset is the fixed UTC offset of the portal's timezone (+05:30).
// The retention purge compensates sqlite's UTC 'now' with this value.
const Offset = 5*time.Hour + 30*time.Minute
