package budget

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status classifies a budget's validity window relative to a reference day.
// The zero value means the status has not been computed yet.
type Status int

const (
	// StatusCurrent means the reference day falls inside [StartDate, EndDate].
	StatusCurrent Status = iota + 1
	// StatusUpcoming means the window has not started yet.
	StatusUpcoming
	// StatusExpired means the window has already ended.
	StatusExpired
)

// String returns the display name of the status.
func (s Status) String() string {
	switch s {
	case StatusCurrent:
		return "current"
	case StatusUpcoming:
		return "upcoming"
	case StatusExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Budget represents a row in the budgets table. Status is derived, never
// stored; repositories annotate it relative to the day of the query.
type Budget struct {
	ID        uuid.UUID
	Name      string
	TeamID    uuid.UUID
	Amount    decimal.Decimal
	StartDate time.Time
	EndDate   time.Time
	Status    Status
}

// StatusOn computes the budget's status relative to the given day. Both window
// bounds are inclusive and only the calendar date matters.
func (b *Budget) StatusOn(today time.Time) Status {
	d := dateOnly(today)
	switch {
	case d.Before(dateOnly(b.StartDate)):
		return StatusUpcoming
	case d.After(dateOnly(b.EndDate)):
		return StatusExpired
	default:
		return StatusCurrent
	}
}

// Annotate computes the status of every budget relative to the given day.
func Annotate(budgets []Budget, today time.Time) {
	for i := range budgets {
		budgets[i].Status = budgets[i].StatusOn(today)
	}
}

// SortByPriority orders budgets current first, then upcoming, then expired,
// with the soonest-expiring budget first within each status. The sort is
// stable, so purchases always drain urgent funds before they lapse.
func SortByPriority(budgets []Budget) {
	sort.SliceStable(budgets, func(i, j int) bool {
		if budgets[i].Status != budgets[j].Status {
			return budgets[i].Status < budgets[j].Status
		}
		return budgets[i].EndDate.Before(budgets[j].EndDate)
	})
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
