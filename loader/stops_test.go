package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStopsBasic(t *testing.T) {
	w := newWriter(t)
	ids, err := parseStops(w, strings.NewReader(
		"stop_id,stop_name,stop_lat,stop_lon\n"+
			"A,Stop A,50.0,14.0\n"+
			"B,Stop B,50.1,14.1\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"A": true, "B": true}, ids)
}

func TestParseStopsDuplicateID(t *testing.T) {
	w := newWriter(t)
	_, err := parseStops(w, strings.NewReader(
		"stop_id,stop_name,stop_lat,stop_lon\n"+
			"A,Stop A,50.0,14.0\n"+
			"A,Stop A2,50.1,14.1\n"))
	require.Error(t, err)
}

func TestParseStopsMissingNameRequired(t *testing.T) {
	w := newWriter(t)
	_, err := parseStops(w, strings.NewReader(
		"stop_id,stop_name,stop_lat,stop_lon,location_type\n"+
			"A,,50.0,14.0,0\n"))
	require.Error(t, err)
}

func TestParseStopsGenericNodeNameOptional(t *testing.T) {
	w := newWriter(t)
	ids, err := parseStops(w, strings.NewReader(
		"stop_id,stop_name,stop_lat,stop_lon,location_type\n"+
			"A,,0,0,3\n"))
	require.NoError(t, err)
	assert.True(t, ids["A"])
}

func TestParseStopsUnknownParentStation(t *testing.T) {
	w := newWriter(t)
	_, err := parseStops(w, strings.NewReader(
		"stop_id,stop_name,stop_lat,stop_lon,parent_station\n"+
			"A,Stop A,50.0,14.0,MISSING\n"))
	require.Error(t, err)
}

func TestParseStopsKnownParentStation(t *testing.T) {
	w := newWriter(t)
	_, err := parseStops(w, strings.NewReader(
		"stop_id,stop_name,stop_lat,stop_lon,parent_station\n"+
			"P,Parent,50.0,14.0,\n"+
			"A,Stop A,50.0,14.0,P\n"))
	require.NoError(t, err)
}
