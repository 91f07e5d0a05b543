// Package timezone keeps every business date in the hotel's local timezone.
//
// Check-in and check-out are calendar dates. They are parsed with ParseDate and
// compared at midnight local time, so a stay never gains or loses a night when
// the server runs in another zone:
//
//	checkin, err := timezone.ParseDate("2024-08-14")
//	today := timezone.Today()
//
// The zone is read from APP_TIMEZONE when the package is imported. Use IANA
// names such as "Asia/Kolkata" or "UTC".
package timezone
