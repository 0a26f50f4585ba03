package utils

import (
	"fmt"
	"time"
)

// SessionName returns a log file stem:
//
//	<prefix>_YYYYMMDD_HHMMSS
func SessionName(prefix string, t time.Time) string {
	return fmt.Sprintf("%s_%s", prefix, t.Format("20060102_150405"))
}

// Millis converts a millisecond config value into a duration.
func Millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
