// Package timezone pins "now" and calendar dates to the configured
// application timezone (APP_TIMEZONE, an IANA name such as "Asia/Kolkata").
//
// Booking timestamps, the "booked on" display and the earliest allowed
// travel date all go through this package so they agree on what "today" is.
// An empty or unknown timezone falls back to UTC.
package timezone
