package results

import (
	"time"

	"go_chrono/timezone"
)

// Reference is the anchor relative expressions resolve against. It is
// immutable and shared by every result of a parse.
type Reference struct {
	instant  time.Time
	location *time.Location
}

// NewReference anchors at instant. A nil location keeps the instant's own.
func NewReference(instant time.Time, location *time.Location) *Reference {
	if location == nil {
		location = instant.Location()
	}
	return &Reference{instant: instant, location: location}
}

// Instant returns the anchor in the reference location.
func (r *Reference) Instant() time.Time { return r.instant.In(r.location) }

// Location returns the reference zone.
func (r *Reference) Location() *time.Location { return r.location }

// Offset returns the reference zone's offset at the instant, in minutes.
func (r *Reference) Offset() int { return timezone.OffsetOf(r.Instant()) }

// OffsetAt returns the reference zone's offset at a wall-clock time.
func (r *Reference) OffsetAt(wall time.Time) int {
	t := time.Date(wall.Year(), wall.Month(), wall.Day(), wall.Hour(), wall.Minute(), wall.Second(), wall.Nanosecond(), r.location)
	return timezone.OffsetOf(t)
}
