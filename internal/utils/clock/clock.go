package clock

import "time"

// Clock is the time source for everything that depends on "now" or on the
// current calendar day. Production code uses Real(); tests use Fake.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) *Ticker
}

// Ticker delivers ticks on C. C has capacity 1; slow readers drop ticks.
type Ticker struct {
	C <-chan time.Time

	stopFunc func()
}

func (t *Ticker) Stop() { t.stopFunc() }

// DayKey formats the calendar day of t in loc as YYYY-MM-DD.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DaysBetween counts whole calendar days from a to b in loc, ignoring the
// time of day. It is negative when b falls before a.
func DaysBetween(a, b time.Time, loc *time.Location) int {
	from := StartOfDay(a, loc)
	to := StartOfDay(b, loc)
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	// UTC arithmetic keeps DST shifts out of the count.
	return int(time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC).Sub(time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)) / (24 * time.Hour))
}
