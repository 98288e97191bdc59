// Package timezone centralizes the application clock.
//
// All booking-date arithmetic (overlap checks, "has the stay started yet"
// comparisons) goes through timezone.Now and timezone.Today so that the
// hotel's configured IANA timezone, not the host's, decides what "today"
// means. The timezone is configured via the APP_TIMEZONE environment
// variable and initialized when the package is imported.
package timezone
