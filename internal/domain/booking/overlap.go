package booking

import "time"

// Overlaps is strict half-open interval overlap: touching intervals do not
// collide.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// OverlapQuery describes a candidate interval. A conflict is any blocking
// booking sharing the client or, when set, the service.
type OverlapQuery struct {
	ExcludeID *uint
	ClientID  uint
	ServiceID *uint
	Start     time.Time
	End       time.Time
}

// Conflict is the colliding booking returned to the caller for display.
type Conflict struct {
	ID        uint       `json:"id"`
	ClientID  uint       `json:"clientId"`
	ServiceID *uint      `json:"serviceId"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Status    string     `json:"status"`
}

type OverlapError struct {
	Conflict *Conflict
}

func (e *OverlapError) Error() string {
	return "overlap_conflict"
}
