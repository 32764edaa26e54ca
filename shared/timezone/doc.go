// Package timezone keeps every timestamp the API writes or renders in one configured zone.
//
// The zone comes from APP_TIMEZONE (an IANA name such as "Europe/Lisbon") and is resolved on
// first use, falling back to UTC when it is empty or unknown:
//
//	createdAt := timezone.Now()
//	rendered := timezone.Format(createdAt, time.RFC3339)
package timezone
