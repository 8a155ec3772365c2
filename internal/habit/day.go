package habit

import "time"

// StartOfLocalDay truncates an instant to midnight of its calendar day in
// the instant's own location. Callers pass times already shifted into the
// user's configured timezone, so "local" means that zone.
func StartOfLocalDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfUTCWeek returns the most recent Sunday at 00:00:00 UTC at or
// before the given instant's UTC calendar date. The week anchor is fixed at
// Sunday; it is a policy choice, not a setting.
func StartOfUTCWeek(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day()-int(u.Weekday()), 0, 0, 0, 0, time.UTC)
}

// AddDays adds n calendar days (n may be negative) by shifting the date
// fields rather than adding n*24h, so results stay day-aligned across DST
// transitions.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// SameUTCDay reports whether two instants fall on the same UTC calendar
// date.
//
// NOTE: this deliberately compares in UTC while StartOfLocalDay truncates
// in local time. The asymmetry is inherited behavior that the streak undo
// path depends on near date boundaries; do not unify the two without
// product sign-off.
func SameUTCDay(a, b time.Time) bool {
	au, bu := a.UTC(), b.UTC()
	return au.Year() == bu.Year() && au.Month() == bu.Month() && au.Day() == bu.Day()
}
