package model

import "github.com/samber/lo"

// SharesDay checks whether a and b meet on a common weekday. The no-second-day sentinel never matches anything
func SharesDay(a, b Meeting) bool {
	return lo.SomeBy(a.MeetingDays(), func(day Day) bool {
		return lo.Contains(b.MeetingDays(), day)
	})
}

// TimeOverlaps checks whether the [start, end) windows of a and b intersect
func TimeOverlaps(a, b Meeting) bool {
	if a.OpenEnded || b.OpenEnded {
		return true
	}
	return !(b.EndTime <= a.StartTime || b.StartTime >= a.EndTime)
}

// ParityExempts checks whether a and b meet on alternating weeks (one odd, the other even)
func ParityExempts(a, b Meeting) bool {
	return a.Parity != Weekly && b.Parity != Weekly && a.Parity != b.Parity
}

// Conflicts checks whether a and b can not both be attended
func Conflicts(a, b Meeting) bool {
	return SharesDay(a, b) && TimeOverlaps(a, b) && !ParityExempts(a, b)
}
