package clock

import "time"

// DefaultLocalOffset is the business calendar's offset from UTC.
const DefaultLocalOffset = 7 * time.Hour

// Local maps stored UTC instants onto the business's local calendar.
// It shifts by a fixed offset instead of loading a tz database so day
// boundaries are identical on every host.
type Local struct {
	offset time.Duration
}

func NewLocal(offset time.Duration) Local {
	return Local{offset: offset}
}

func (l Local) Offset() time.Duration {
	return l.offset
}

// ToLocal returns t shifted by the offset, expressed in UTC so that its
// calendar fields read as local wall-clock values.
func (l Local) ToLocal(t time.Time) time.Time {
	return t.UTC().Add(l.offset)
}

// Day returns local midnight of the calendar day containing t.
func (l Local) Day(t time.Time) time.Time {
	lt := l.ToLocal(t)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, time.UTC)
}
