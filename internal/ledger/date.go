package ledger

import (
	"fmt"
	"time"
)

// DateLayout is the fixed-width key format for day logs. Fixed width makes
// lexicographic order equal to chronological order.
const DateLayout = "2006-01-02"

// DateOf returns the calendar date of t in the local time zone.
func DateOf(t time.Time) string {
	return t.In(time.Local).Format(DateLayout)
}

// ParseDate checks that s is a real YYYY-MM-DD date and returns it unchanged.
func ParseDate(s string) (string, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil || t.Format(DateLayout) != s {
		return "", fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrValidation, s)
	}
	return s, nil
}

// BackupFileName is the file name offered for an export taken on today.
func BackupFileName(today string) string {
	return "tracker_backup_" + today + ".json"
}
