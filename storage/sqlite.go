package storage

import (
	"database/sql"
	"os"

	"github.com/pkg/errors"

	_ "github.com/mattn/go-sqlite3"

	"transit.dev/earliest/model"
)

// SQLiteConfig selects where SQLiteStorage keeps its databases. OnDisk
// false (the default) keeps everything in :memory:, useful for tests;
// OnDisk true persists one database file per feed hash under Directory,
// useful across repeated CLI invocations against a feed too large to
// comfortably re-parse every time.
type SQLiteConfig struct {
	OnDisk    bool
	Directory string
}

type SQLiteStorage struct {
	SQLiteConfig
	feeds map[string]*sql.DB
}

func NewSQLiteStorage(cfg ...SQLiteConfig) *SQLiteStorage {
	s := &SQLiteStorage{feeds: map[string]*sql.DB{}}
	if len(cfg) > 0 {
		s.SQLiteConfig = cfg[0]
	}
	return s
}

func (s *SQLiteStorage) sourceName(hash string) string {
	if !s.OnDisk {
		return ":memory:"
	}
	return s.Directory + "/" + hash + ".db"
}

func (s *SQLiteStorage) GetReader(hash string) (FeedReader, error) {
	if db, found := s.feeds[hash]; found {
		return &sqliteFeed{db: db}, nil
	}

	// An in-memory database dies with its connection, so a feed not in
	// s.feeds cannot be recovered; on disk it can be reopened by path.
	if !s.OnDisk {
		return nil, errors.Errorf("feed %s not found", hash)
	}

	name := s.sourceName(hash)
	if _, err := os.Stat(name); os.IsNotExist(err) {
		return nil, errors.Errorf("feed %s does not exist at %s", hash, name)
	}

	db, err := sql.Open("sqlite3", name)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	s.feeds[hash] = db

	return &sqliteFeed{db: db}, nil
}

func (s *SQLiteStorage) GetWriter(hash string) (FeedWriter, error) {
	name := s.sourceName(hash)
	if s.OnDisk {
		if _, err := os.Stat(name); err == nil {
			if err := os.Remove(name); err != nil {
				return nil, errors.Wrap(err, "removing existing database")
			}
		}
	}

	db, err := sql.Open("sqlite3", name)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if !s.OnDisk {
		// Every pooled connection to ":memory:" gets its own database;
		// cap the pool so the schema and data stay on one.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating schema")
	}

	s.feeds[hash] = db

	return &sqliteFeed{db: db}, nil
}

const sqliteSchema = `
CREATE TABLE agency (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    url TEXT NOT NULL,
    timezone TEXT NOT NULL
);
CREATE TABLE stops (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    lat REAL NOT NULL,
    lon REAL NOT NULL,
    zone TEXT,
    location_type INTEGER NOT NULL,
    parent_station TEXT,
    platform_code TEXT
);
CREATE TABLE routes (
    id TEXT PRIMARY KEY,
    short_name TEXT,
    long_name TEXT,
    type INTEGER NOT NULL,
    is_night INTEGER NOT NULL
);
CREATE TABLE trips (
    id TEXT PRIMARY KEY,
    route_id TEXT NOT NULL,
    service_id TEXT NOT NULL,
    headsign TEXT,
    direction_id INTEGER
);
CREATE TABLE stop_times (
    trip_id TEXT NOT NULL,
    stop_id TEXT NOT NULL,
    stop_sequence INTEGER NOT NULL,
    arrival_seconds INTEGER NOT NULL,
    departure_seconds INTEGER NOT NULL,
    headsign TEXT,
    pickup_type INTEGER NOT NULL,
    drop_off_type INTEGER NOT NULL
);
CREATE INDEX stop_times_trip_id ON stop_times (trip_id);
CREATE TABLE services (
    id TEXT PRIMARY KEY,
    start_date TEXT NOT NULL,
    end_date TEXT NOT NULL,
    monday INTEGER NOT NULL,
    tuesday INTEGER NOT NULL,
    wednesday INTEGER NOT NULL,
    thursday INTEGER NOT NULL,
    friday INTEGER NOT NULL,
    saturday INTEGER NOT NULL,
    sunday INTEGER NOT NULL
);
CREATE TABLE service_exceptions (
    service_id TEXT NOT NULL,
    date TEXT NOT NULL,
    exception_type INTEGER NOT NULL
);
`

type sqliteFeed struct {
	db *sql.DB
}

func (f *sqliteFeed) WriteAgency(a model.Agency) error {
	_, err := f.db.Exec(`INSERT INTO agency (id, name, url, timezone) VALUES (?, ?, ?, ?)`,
		a.ID, a.Name, a.URL, a.Timezone)
	return errors.Wrap(err, "inserting agency")
}

func (f *sqliteFeed) WriteStop(s model.Stop) error {
	_, err := f.db.Exec(`
INSERT INTO stops (id, name, lat, lon, zone, location_type, parent_station, platform_code)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Name, s.Lat, s.Lon, s.Zone, s.LocationType, s.ParentStation, s.PlatformCode)
	return errors.Wrap(err, "inserting stop")
}

func (f *sqliteFeed) WriteRoute(r model.Route) error {
	_, err := f.db.Exec(`INSERT INTO routes (id, short_name, long_name, type, is_night) VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.ShortName, r.LongName, r.Type, r.IsNight)
	return errors.Wrap(err, "inserting route")
}

func (f *sqliteFeed) BeginTrips() error { return nil }

func (f *sqliteFeed) WriteTrip(t model.Trip) error {
	_, err := f.db.Exec(`INSERT INTO trips (id, route_id, service_id, headsign, direction_id) VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.RouteID, t.ServiceID, t.Headsign, t.DirectionID)
	return errors.Wrap(err, "inserting trip")
}

func (f *sqliteFeed) EndTrips() error { return nil }

func (f *sqliteFeed) WriteService(s model.Service) error {
	_, err := f.db.Exec(`
INSERT INTO services (id, start_date, end_date, monday, tuesday, wednesday, thursday, friday, saturday, sunday)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.StartDate, s.EndDate,
		s.Weekday[1], s.Weekday[2], s.Weekday[3], s.Weekday[4], s.Weekday[5], s.Weekday[6], s.Weekday[0],
	)
	return errors.Wrap(err, "inserting service")
}

func (f *sqliteFeed) WriteServiceException(e model.ServiceException) error {
	_, err := f.db.Exec(`INSERT INTO service_exceptions (service_id, date, exception_type) VALUES (?, ?, ?)`,
		e.ServiceID, e.Date, e.Type)
	return errors.Wrap(err, "inserting service exception")
}

func (f *sqliteFeed) BeginStopTimes() error { return nil }

func (f *sqliteFeed) WriteStopTime(st model.StopTime) error {
	_, err := f.db.Exec(`
INSERT INTO stop_times (trip_id, stop_id, stop_sequence, arrival_seconds, departure_seconds, headsign, pickup_type, drop_off_type)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		st.TripID, st.StopID, st.StopSequence, st.ArrivalSeconds, st.DepartureSeconds, st.Headsign, st.PickupType, st.DropOffType)
	return errors.Wrap(err, "inserting stop_time")
}

func (f *sqliteFeed) EndStopTimes() error { return nil }

func (f *sqliteFeed) Close() error {
	_, err := f.db.Exec(`ANALYZE`)
	return errors.Wrap(err, "analyzing database")
}

func (f *sqliteFeed) Agencies() ([]model.Agency, error) {
	rows, err := f.db.Query(`SELECT id, name, url, timezone FROM agency`)
	if err != nil {
		return nil, errors.Wrap(err, "querying agencies")
	}
	defer rows.Close()

	var agencies []model.Agency
	for rows.Next() {
		var a model.Agency
		if err := rows.Scan(&a.ID, &a.Name, &a.URL, &a.Timezone); err != nil {
			return nil, errors.Wrap(err, "scanning agency")
		}
		agencies = append(agencies, a)
	}
	return agencies, nil
}

func (f *sqliteFeed) Stops() ([]model.Stop, error) {
	rows, err := f.db.Query(`SELECT id, name, lat, lon, zone, location_type, parent_station, platform_code FROM stops`)
	if err != nil {
		return nil, errors.Wrap(err, "querying stops")
	}
	defer rows.Close()

	var stops []model.Stop
	for rows.Next() {
		var s model.Stop
		if err := rows.Scan(&s.ID, &s.Name, &s.Lat, &s.Lon, &s.Zone, &s.LocationType, &s.ParentStation, &s.PlatformCode); err != nil {
			return nil, errors.Wrap(err, "scanning stop")
		}
		stops = append(stops, s)
	}
	return stops, nil
}

func (f *sqliteFeed) Routes() ([]model.Route, error) {
	rows, err := f.db.Query(`SELECT id, short_name, long_name, type, is_night FROM routes`)
	if err != nil {
		return nil, errors.Wrap(err, "querying routes")
	}
	defer rows.Close()

	var routes []model.Route
	for rows.Next() {
		var r model.Route
		if err := rows.Scan(&r.ID, &r.ShortName, &r.LongName, &r.Type, &r.IsNight); err != nil {
			return nil, errors.Wrap(err, "scanning route")
		}
		routes = append(routes, r)
	}
	return routes, nil
}

func (f *sqliteFeed) Trips() ([]model.Trip, error) {
	rows, err := f.db.Query(`SELECT id, route_id, service_id, headsign, direction_id FROM trips`)
	if err != nil {
		return nil, errors.Wrap(err, "querying trips")
	}
	defer rows.Close()

	var trips []model.Trip
	for rows.Next() {
		var t model.Trip
		if err := rows.Scan(&t.ID, &t.RouteID, &t.ServiceID, &t.Headsign, &t.DirectionID); err != nil {
			return nil, errors.Wrap(err, "scanning trip")
		}
		trips = append(trips, t)
	}
	return trips, nil
}

func (f *sqliteFeed) StopTimes() ([]model.StopTime, error) {
	rows, err := f.db.Query(`
SELECT trip_id, stop_id, stop_sequence, arrival_seconds, departure_seconds, headsign, pickup_type, drop_off_type
FROM stop_times`)
	if err != nil {
		return nil, errors.Wrap(err, "querying stop_times")
	}
	defer rows.Close()

	var sts []model.StopTime
	for rows.Next() {
		var st model.StopTime
		if err := rows.Scan(&st.TripID, &st.StopID, &st.StopSequence, &st.ArrivalSeconds, &st.DepartureSeconds, &st.Headsign, &st.PickupType, &st.DropOffType); err != nil {
			return nil, errors.Wrap(err, "scanning stop_time")
		}
		sts = append(sts, st)
	}
	return sts, nil
}

func (f *sqliteFeed) Services() ([]model.Service, error) {
	rows, err := f.db.Query(`
SELECT id, start_date, end_date, monday, tuesday, wednesday, thursday, friday, saturday, sunday
FROM services`)
	if err != nil {
		return nil, errors.Wrap(err, "querying services")
	}
	defer rows.Close()

	var services []model.Service
	for rows.Next() {
		var s model.Service
		var mon, tue, wed, thu, fri, sat, sun bool
		if err := rows.Scan(&s.ID, &s.StartDate, &s.EndDate, &mon, &tue, &wed, &thu, &fri, &sat, &sun); err != nil {
			return nil, errors.Wrap(err, "scanning service")
		}
		s.Weekday = [7]bool{sun, mon, tue, wed, thu, fri, sat}
		services = append(services, s)
	}
	return services, nil
}

func (f *sqliteFeed) ServiceExceptions() ([]model.ServiceException, error) {
	rows, err := f.db.Query(`SELECT service_id, date, exception_type FROM service_exceptions`)
	if err != nil {
		return nil, errors.Wrap(err, "querying service_exceptions")
	}
	defer rows.Close()

	var exs []model.ServiceException
	for rows.Next() {
		var e model.ServiceException
		if err := rows.Scan(&e.ServiceID, &e.Date, &e.Type); err != nil {
			return nil, errors.Wrap(err, "scanning service_exception")
		}
		exs = append(exs, e)
	}
	return exs, nil
}
