package ioschema

import "time"

// nowUTC returns the current time in the precision kept by both
// PostgreSQL and SQLite.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
