package request

import (
	"time"

	"github.com/kita-hr/leave-backend-go/internal/domain/request"
)

const (
	timeOfDayLayout = "15:04"

	// accrualThreshold is the daily duty duration that must be strictly
	// exceeded before the day earns a change-off day. Exactly eight hours
	// earns nothing.
	accrualThreshold = 8 * time.Hour
)

// Accrual is the submission-time result of evaluating an activity log.
// Days is the canonical figure the ledger is credited with on HR approval;
// TotalHours feeds the legacy display value only.
type Accrual struct {
	Days       int
	TotalHours float64
}

// CalculateAccrual evaluates a change-off activity log. Each calendar date
// is judged once on its summed duration; an end time earlier than its start
// means the activity ran past midnight and gets a 24-hour correction.
func CalculateAccrual(log request.ActivityLog) (Accrual, error) {
	if len(log) == 0 {
		return Accrual{}, request.ErrEmptyActivityLog
	}

	perDate := make(map[string]time.Duration)
	order := make([]string, 0, len(log))

	for _, entry := range log {
		d, err := entryDuration(entry)
		if err != nil {
			return Accrual{}, err
		}
		if _, seen := perDate[entry.Date]; !seen {
			order = append(order, entry.Date)
		}
		perDate[entry.Date] += d
	}

	var acc Accrual
	for _, date := range order {
		total := perDate[date]
		acc.TotalHours += total.Hours()
		if total > accrualThreshold {
			acc.Days++
		}
	}
	return acc, nil
}

func entryDuration(entry request.ActivityEntry) (time.Duration, error) {
	start, err := time.Parse(timeOfDayLayout, entry.StartTime)
	if err != nil {
		return 0, request.ErrInvalidActivityTime
	}
	end, err := time.Parse(timeOfDayLayout, entry.EndTime)
	if err != nil {
		return 0, request.ErrInvalidActivityTime
	}

	d := end.Sub(start)
	if d < 0 {
		d += 24 * time.Hour
	}
	return d, nil
}
