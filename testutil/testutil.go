// Package testutil builds feed-directory fixtures for tests across the
// module.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"transit.dev/earliest/storage"
)

// BuildDir writes files (one GTFS filename to a slice of CSV lines) into a
// fresh temp directory and returns its path. Missing required files are
// filled in with minimal dummy data so a caller only needs to specify the
// files its test actually exercises.
func BuildDir(t testing.TB, files map[string][]string) string {
	dir := t.TempDir()

	if files["agency.txt"] == nil {
		files["agency.txt"] = []string{
			"agency_id,agency_name,agency_url,agency_timezone",
			"AG,FooAgency,https://example.com,UTC",
		}
	}
	if files["calendar.txt"] == nil && files["calendar_dates.txt"] == nil {
		files["calendar.txt"] = []string{
			"service_id,start_date,end_date,monday,tuesday,wednesday,thursday,friday,saturday,sunday",
		}
	}
	if files["routes.txt"] == nil {
		files["routes.txt"] = []string{"route_id,agency_id,route_short_name,route_long_name,route_type"}
	}
	if files["trips.txt"] == nil {
		files["trips.txt"] = []string{"trip_id,route_id,service_id,direction_id"}
	}
	if files["stops.txt"] == nil {
		files["stops.txt"] = []string{"stop_id,stop_name,stop_lat,stop_lon"}
	}
	if files["stop_times.txt"] == nil {
		files["stop_times.txt"] = []string{"trip_id,stop_id,stop_sequence,arrival_time,departure_time"}
	}

	for name, lines := range files {
		path := filepath.Join(dir, name)
		content := strings.Join(lines, "\n") + "\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	return dir
}

// BuildStorage returns a fresh Storage backend by name, for tests that
// want to exercise a specific cache implementation.
func BuildStorage(t testing.TB, backend string) storage.Storage {
	switch backend {
	case "", "memory":
		return storage.NewMemoryStorage()
	case "sqlite":
		return storage.NewSQLiteStorage()
	default:
		t.Fatalf("unknown storage backend %q", backend)
		return nil
	}
}
