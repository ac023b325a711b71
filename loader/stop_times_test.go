package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStopTimesBasic(t *testing.T) {
	w := newWriter(t)
	trips := map[string]bool{"T1": true}
	stops := map[string]bool{"A": true, "B": true}
	sts, err := parseStopTimes(w, strings.NewReader(
		"trip_id,stop_id,stop_sequence,arrival_time,departure_time\n"+
			"T1,A,1,10:00:00,10:00:00\n"+
			"T1,B,2,10:05:00,10:05:00\n"), trips, stops)
	require.NoError(t, err)
	require.Len(t, sts, 2)
	assert.Equal(t, 36000, sts[0].DepartureSeconds)
	assert.Equal(t, 36300, sts[1].ArrivalSeconds)
}

func TestParseStopTimesOvernight(t *testing.T) {
	w := newWriter(t)
	trips := map[string]bool{"T1": true}
	stops := map[string]bool{"A": true}
	sts, err := parseStopTimes(w, strings.NewReader(
		"trip_id,stop_id,stop_sequence,arrival_time,departure_time\n"+
			"T1,A,1,25:30:00,25:30:00\n"), trips, stops)
	require.NoError(t, err)
	require.Len(t, sts, 1)
	assert.Equal(t, 25*3600+30*60, sts[0].ArrivalSeconds)
}

func TestParseStopTimesUnknownTrip(t *testing.T) {
	w := newWriter(t)
	trips := map[string]bool{}
	stops := map[string]bool{"A": true}
	_, err := parseStopTimes(w, strings.NewReader(
		"trip_id,stop_id,stop_sequence,arrival_time,departure_time\n"+
			"T1,A,1,10:00:00,10:00:00\n"), trips, stops)
	require.Error(t, err)
}

func TestParseStopTimesUnknownStop(t *testing.T) {
	w := newWriter(t)
	trips := map[string]bool{"T1": true}
	stops := map[string]bool{}
	_, err := parseStopTimes(w, strings.NewReader(
		"trip_id,stop_id,stop_sequence,arrival_time,departure_time\n"+
			"T1,A,1,10:00:00,10:00:00\n"), trips, stops)
	require.Error(t, err)
}

func TestParseStopTimesDuplicateSequence(t *testing.T) {
	w := newWriter(t)
	trips := map[string]bool{"T1": true}
	stops := map[string]bool{"A": true, "B": true}
	_, err := parseStopTimes(w, strings.NewReader(
		"trip_id,stop_id,stop_sequence,arrival_time,departure_time\n"+
			"T1,A,1,10:00:00,10:00:00\n"+
			"T1,B,1,10:05:00,10:05:00\n"), trips, stops)
	require.Error(t, err)
}

func TestParseStopTimesSortedByTripAndSequence(t *testing.T) {
	w := newWriter(t)
	trips := map[string]bool{"T1": true, "T2": true}
	stops := map[string]bool{"A": true, "B": true}
	sts, err := parseStopTimes(w, strings.NewReader(
		"trip_id,stop_id,stop_sequence,arrival_time,departure_time\n"+
			"T2,A,2,10:00:00,10:00:00\n"+
			"T1,B,3,10:05:00,10:05:00\n"+
			"T2,B,1,09:55:00,09:55:00\n"), trips, stops)
	require.NoError(t, err)
	require.Len(t, sts, 3)
	assert.Equal(t, "T1", sts[0].TripID)
	assert.Equal(t, "T2", sts[1].TripID)
	assert.Equal(t, uint32(1), sts[1].StopSequence)
	assert.Equal(t, uint32(2), sts[2].StopSequence)
}
