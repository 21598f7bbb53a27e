package budget_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"teambudget/internal/budget"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestStatusOn_Partition(t *testing.T) {
	b := budget.Budget{StartDate: day("2026-03-01"), EndDate: day("2026-03-31")}

	assert.Equal(t, budget.StatusUpcoming, b.StatusOn(day("2026-02-28")))
	assert.Equal(t, budget.StatusCurrent, b.StatusOn(day("2026-03-01")), "start day is inclusive")
	assert.Equal(t, budget.StatusCurrent, b.StatusOn(day("2026-03-15")))
	assert.Equal(t, budget.StatusCurrent, b.StatusOn(day("2026-03-31")), "end day is inclusive")
	assert.Equal(t, budget.StatusExpired, b.StatusOn(day("2026-04-01")))
}

func TestStatusOn_TimeOfDayIgnored(t *testing.T) {
	b := budget.Budget{StartDate: day("2026-03-01"), EndDate: day("2026-03-31")}

	lateOnEndDay := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, budget.StatusCurrent, b.StatusOn(lateOnEndDay))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "current", budget.StatusCurrent.String())
	assert.Equal(t, "upcoming", budget.StatusUpcoming.String())
	assert.Equal(t, "expired", budget.StatusExpired.String())
}

func TestSortByPriority(t *testing.T) {
	today := day("2026-03-15")
	budgets := []budget.Budget{
		{Name: "expired", StartDate: day("2026-01-01"), EndDate: day("2026-01-31")},
		{Name: "current-late", StartDate: day("2026-03-01"), EndDate: day("2026-12-31")},
		{Name: "upcoming", StartDate: day("2026-06-01"), EndDate: day("2026-06-30")},
		{Name: "current-soon", StartDate: day("2026-03-01"), EndDate: day("2026-03-31")},
	}
	for i := range budgets {
		budgets[i].ID = uuid.New()
		budgets[i].Amount = decimal.NewFromInt(100)
	}

	budget.Annotate(budgets, today)
	budget.SortByPriority(budgets)

	var names []string
	for _, b := range budgets {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"current-soon", "current-late", "upcoming", "expired"}, names,
		"current precedes upcoming precedes expired, soonest end date first within a status")
}

func TestSortByPriority_StableWithinSameEndDate(t *testing.T) {
	today := day("2026-03-15")
	budgets := []budget.Budget{
		{Name: "first", StartDate: day("2026-03-01"), EndDate: day("2026-03-31")},
		{Name: "second", StartDate: day("2026-03-01"), EndDate: day("2026-03-31")},
	}

	budget.Annotate(budgets, today)
	budget.SortByPriority(budgets)

	assert.Equal(t, "first", budgets[0].Name)
	assert.Equal(t, "second", budgets[1].Name)
}
