package codec

import (
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// TimestampToDateTime splits unix seconds into a UTC date and HH:MM clock.
// Invalid or non-positive input yields two empty strings.
func TimestampToDateTime(raw string) (date, clock string) {
	ts, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || ts <= 0 {
		return "", ""
	}
	t := time.Unix(ts, 0).UTC()
	return t.Format(dateLayout), t.Format(clockLayout)
}

// DateTimeToTimestamp joins a UTC date and optional HH:MM clock into unix
// seconds. A date alone means midnight; no date yields "".
func DateTimeToTimestamp(date, clock string) string {
	date, clock = strings.TrimSpace(date), strings.TrimSpace(clock)
	if date == "" {
		return ""
	}
	if clock == "" {
		clock = "00:00"
	}
	t, err := time.ParseInLocation(dateLayout+" "+clockLayout, date+" "+clock, time.UTC)
	if err != nil {
		return ""
	}
	return strconv.FormatInt(t.Unix(), 10)
}
