// Package timezone keeps every timestamp the service produces in the configured
// APP_TIMEZONE (IANA name, UTC when unset) and provides calendar-date helpers
// used by stay pricing:
//
//	now := timezone.Now()
//	day := timezone.Day(checkIn)                     // midnight UTC of the calendar date
//	n := timezone.NightsBetween(checkIn, checkOut)   // 0 for reversed ranges
//
// The location is resolved once when the package is imported.
package timezone
