package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transit.dev/earliest/storage"
)

func writeFixtureFeed(t *testing.T, dir string) {
	files := map[string]string{
		"agency.txt": "agency_id,agency_name,agency_url,agency_timezone\n" +
			"AG,Metro,https://metro.example,Europe/Prague\n",
		"routes.txt": "route_id,agency_id,route_short_name,route_long_name,route_type\n" +
			"R1,AG,1,Downtown Line,0\n",
		"stops.txt": "stop_id,stop_name,stop_lat,stop_lon\n" +
			"A,Stop A,50.0,14.0\n" +
			"B,Stop B,50.1,14.1\n",
		"trips.txt": "trip_id,route_id,service_id,direction_id\n" +
			"T1,R1,S_sat,0\n",
		"stop_times.txt": "trip_id,stop_id,stop_sequence,arrival_time,departure_time\n" +
			"T1,A,1,10:00:00,10:00:00\n" +
			"T1,B,2,10:05:00,10:05:00\n",
		"calendar.txt": "service_id,start_date,end_date,monday,tuesday,wednesday,thursday,friday,saturday,sunday\n" +
			"S_sat,20200101,20201231,0,0,0,0,0,1,0\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

func TestLoadDirectoryRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeFixtureFeed(t, dir)

	s := storage.NewMemoryStorage()
	w, err := s.GetWriter("hash1")
	require.NoError(t, err)

	require.NoError(t, LoadDirectory(w, dir))

	r, err := s.GetReader("hash1")
	require.NoError(t, err)

	agencies, err := r.Agencies()
	require.NoError(t, err)
	assert.Len(t, agencies, 1)

	trips, err := r.Trips()
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, "S_sat", trips[0].ServiceID)

	sts, err := r.StopTimes()
	require.NoError(t, err)
	assert.Len(t, sts, 2)

	services, err := r.Services()
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.True(t, services[0].Weekday[6])
}

func TestLoadDirectoryMissingRequiredFile(t *testing.T) {
	dir := t.TempDir()
	writeFixtureFeed(t, dir)
	require.NoError(t, os.Remove(filepath.Join(dir, "stops.txt")))

	s := storage.NewMemoryStorage()
	w, err := s.GetWriter("hash1")
	require.NoError(t, err)

	err = LoadDirectory(w, dir)
	require.Error(t, err)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "stops.txt", schemaErr.File)
}

func TestLoadDirectoryCalendarDatesOnly(t *testing.T) {
	dir := t.TempDir()
	writeFixtureFeed(t, dir)
	require.NoError(t, os.Remove(filepath.Join(dir, "calendar.txt")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "calendar_dates.txt"),
		[]byte("service_id,date,exception_type\nS_sat,20200201,1\n"), 0644))

	s := storage.NewMemoryStorage()
	w, err := s.GetWriter("hash1")
	require.NoError(t, err)

	require.NoError(t, LoadDirectory(w, dir))

	r, err := s.GetReader("hash1")
	require.NoError(t, err)
	services, err := r.Services()
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "S_sat", services[0].ID)

	exceptions, err := r.ServiceExceptions()
	require.NoError(t, err)
	require.Len(t, exceptions, 1)
}
