package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCalendarBasic(t *testing.T) {
	services, err := parseCalendar(strings.NewReader(
		"service_id,start_date,end_date,monday,tuesday,wednesday,thursday,friday,saturday,sunday\n" +
			"S_weekday,20200101,20201231,1,1,1,1,1,0,0\n"))
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.True(t, services[0].Weekday[1])  // Monday
	assert.False(t, services[0].Weekday[6]) // Saturday
	assert.False(t, services[0].Weekday[0]) // Sunday
}

func TestParseCalendarDuplicateService(t *testing.T) {
	_, err := parseCalendar(strings.NewReader(
		"service_id,start_date,end_date,monday,tuesday,wednesday,thursday,friday,saturday,sunday\n" +
			"S1,20200101,20201231,1,0,0,0,0,0,0\n" +
			"S1,20200101,20201231,0,1,0,0,0,0,0\n"))
	require.Error(t, err)
}

func TestParseCalendarInvalidDayFlag(t *testing.T) {
	_, err := parseCalendar(strings.NewReader(
		"service_id,start_date,end_date,monday,tuesday,wednesday,thursday,friday,saturday,sunday\n" +
			"S1,20200101,20201231,2,0,0,0,0,0,0\n"))
	require.Error(t, err)
}

func TestParseCalendarInvalidDateRange(t *testing.T) {
	_, err := parseCalendar(strings.NewReader(
		"service_id,start_date,end_date,monday,tuesday,wednesday,thursday,friday,saturday,sunday\n" +
			"S1,notadate,20201231,1,0,0,0,0,0,0\n"))
	require.Error(t, err)
}
