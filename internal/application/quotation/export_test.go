package quotation

import "time"

// SetClock pins the ledger clock in tests.
func SetClock(l *Ledger, at time.Time) {
	l.now = func() time.Time { return at }
}
