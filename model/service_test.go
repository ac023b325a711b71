package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func saturday(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func TestServiceOperatesOnWeekdayAndRange(t *testing.T) {
	s := &Service{
		ID:        "S_sat",
		StartDate: "20200101",
		EndDate:   "20201231",
	}
	s.Weekday[time.Saturday] = true

	// 2020-02-01 is a Saturday.
	assert.True(t, s.OperatesOn(saturday(2020, 2, 1)))
	// 2020-02-03 is a Monday.
	assert.False(t, s.OperatesOn(saturday(2020, 2, 3)))
	// Outside the date range entirely.
	assert.False(t, s.OperatesOn(saturday(2021, 2, 6)))
}

func TestServiceExceptionOverrides(t *testing.T) {
	s := &Service{
		ID:        "S",
		StartDate: "20200101",
		EndDate:   "20201231",
		Exceptions: []ServiceException{
			{ServiceID: "S", Date: "20200201", Type: ExceptionAdded},
			{ServiceID: "S", Date: "20200208", Type: ExceptionRemoved},
		},
	}
	// Saturday flag unset, but exception forces operation on 2020-02-01.
	assert.True(t, s.OperatesOn(saturday(2020, 2, 1)))

	// Give it a Saturday flag so the next case tests the override, not
	// the baseline.
	s.Weekday[time.Saturday] = true
	assert.False(t, s.OperatesOn(saturday(2020, 2, 8)))
}
