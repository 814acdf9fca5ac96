package clock

import "time"

// Layout matches JavaScript's Date.toISOString output.
const Layout = "2006-01-02T15:04:05.000Z"

// Now is swapped out by tests that need fixed timestamps.
var Now = time.Now

// Stamp returns the current time in Layout, in UTC.
func Stamp() string {
	return Now().UTC().Format(Layout)
}
