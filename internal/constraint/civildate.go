package constraint

import (
	"time"

	"github.com/shiftforge/shiftcore/internal/domain"
)

// dateToTime reconstructs a civil date's weekday. The weekday of a
// calendar date is zone-independent once the y/m/d triple is fixed, so
// UTC is used purely as a neutral anchor for time.Date's weekday
// calculation.
func dateToTime(d domain.CivilDate) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}
