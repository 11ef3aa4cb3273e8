// Package scheduler holds the pure interval logic behind the booking
// conflict rule: no two active sessions on the same resource may overlap.
package scheduler

import "time"

// Booking is the slice of a session the conflict check needs.
type Booking struct {
	ID         string
	ResourceID string
	Start      time.Time
	End        time.Time
	Canceled   bool
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// FindConflict returns the first existing booking that conflicts with the
// candidate: same resource, not canceled, intersecting interval. Bookings
// whose ID equals excludeID are skipped so in-place edits do not collide
// with themselves.
func FindConflict(existing []Booking, candidate Booking, excludeID string) (Booking, bool) {
	for _, booking := range existing {
		if booking.Canceled {
			continue
		}
		if excludeID != "" && booking.ID == excludeID {
			continue
		}
		if booking.ResourceID != candidate.ResourceID {
			continue
		}
		if Overlaps(booking.Start, booking.End, candidate.Start, candidate.End) {
			return booking, true
		}
	}
	return Booking{}, false
}

// HasConflict reports whether any existing booking conflicts with the
// candidate interval on the given resource.
func HasConflict(existing []Booking, candidate Booking, excludeID string) bool {
	_, found := FindConflict(existing, candidate, excludeID)
	return found
}

// StatusRank orders session statuses for calendar display: arrived sessions
// first, then planned, completed, canceled, and anything unknown last.
func StatusRank(status string) int {
	switch status {
	case "arrived":
		return 1
	case "planned":
		return 2
	case "completed":
		return 3
	case "canceled":
		return 4
	default:
		return 5
	}
}
