package utils

import "time"

// PrettyDate formats t for human-readable notification messages.
func PrettyDate(t time.Time) string {
	return t.Format("Mon, 02 Jan 2006 15:04 MST")
}
