package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTripsBasic(t *testing.T) {
	w := newWriter(t)
	routes := map[string]bool{"R1": true}
	services := map[string]bool{"S1": true}
	ids, err := parseTrips(w, strings.NewReader(
		"trip_id,route_id,service_id,trip_headsign,direction_id\n"+
			"T1,R1,S1,Downtown,0\n"), routes, services)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"T1": true}, ids)
}

func TestParseTripsUnknownRoute(t *testing.T) {
	w := newWriter(t)
	routes := map[string]bool{}
	services := map[string]bool{"S1": true}
	_, err := parseTrips(w, strings.NewReader(
		"trip_id,route_id,service_id,direction_id\n"+
			"T1,R1,S1,0\n"), routes, services)
	require.Error(t, err)
}

func TestParseTripsUnknownService(t *testing.T) {
	w := newWriter(t)
	routes := map[string]bool{"R1": true}
	services := map[string]bool{}
	_, err := parseTrips(w, strings.NewReader(
		"trip_id,route_id,service_id,direction_id\n"+
			"T1,R1,S1,0\n"), routes, services)
	require.Error(t, err)
}

func TestParseTripsInvalidDirection(t *testing.T) {
	w := newWriter(t)
	routes := map[string]bool{"R1": true}
	services := map[string]bool{"S1": true}
	_, err := parseTrips(w, strings.NewReader(
		"trip_id,route_id,service_id,direction_id\n"+
			"T1,R1,S1,7\n"), routes, services)
	require.Error(t, err)
}

func TestParseTripsDuplicateID(t *testing.T) {
	w := newWriter(t)
	routes := map[string]bool{"R1": true}
	services := map[string]bool{"S1": true}
	_, err := parseTrips(w, strings.NewReader(
		"trip_id,route_id,service_id,direction_id\n"+
			"T1,R1,S1,0\n"+
			"T1,R1,S1,0\n"), routes, services)
	require.Error(t, err)
}
