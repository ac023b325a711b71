package storage

import (
	"database/sql"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	"transit.dev/earliest/model"
)

const psqlStopTimeBatchSize = 5000

// PostgresStorage shares one set of tables across every cached feed,
// partitioned by a hash column, so a parsed feed's records can be shared
// across processes.
type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(connStr string) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, errors.Wrap(err, "opening db")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "pinging db")
	}

	if _, err := db.Exec(postgresSchema); err != nil {
		return nil, errors.Wrap(err, "creating schema")
	}

	return &PostgresStorage{db: db}, nil
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS agency (
    hash TEXT NOT NULL, id TEXT NOT NULL, name TEXT NOT NULL, url TEXT NOT NULL, timezone TEXT NOT NULL,
    PRIMARY KEY (hash, id)
);
CREATE TABLE IF NOT EXISTS stops (
    hash TEXT NOT NULL, id TEXT NOT NULL, name TEXT NOT NULL, lat DOUBLE PRECISION NOT NULL,
    lon DOUBLE PRECISION NOT NULL, zone TEXT, location_type INTEGER NOT NULL,
    parent_station TEXT, platform_code TEXT,
    PRIMARY KEY (hash, id)
);
CREATE TABLE IF NOT EXISTS routes (
    hash TEXT NOT NULL, id TEXT NOT NULL, short_name TEXT, long_name TEXT, type INTEGER NOT NULL, is_night BOOLEAN NOT NULL,
    PRIMARY KEY (hash, id)
);
CREATE TABLE IF NOT EXISTS trips (
    hash TEXT NOT NULL, id TEXT NOT NULL, route_id TEXT NOT NULL, service_id TEXT NOT NULL,
    headsign TEXT, direction_id INTEGER,
    PRIMARY KEY (hash, id)
);
CREATE TABLE IF NOT EXISTS stop_times (
    hash TEXT NOT NULL, trip_id TEXT NOT NULL, stop_id TEXT NOT NULL, stop_sequence INTEGER NOT NULL,
    arrival_seconds INTEGER NOT NULL, departure_seconds INTEGER NOT NULL, headsign TEXT,
    pickup_type INTEGER NOT NULL, drop_off_type INTEGER NOT NULL,
    PRIMARY KEY (hash, trip_id, stop_sequence)
);
CREATE INDEX IF NOT EXISTS stop_times_trip_id ON stop_times (hash, trip_id);
CREATE TABLE IF NOT EXISTS services (
    hash TEXT NOT NULL, id TEXT NOT NULL, start_date TEXT NOT NULL, end_date TEXT NOT NULL,
    monday BOOLEAN NOT NULL, tuesday BOOLEAN NOT NULL, wednesday BOOLEAN NOT NULL, thursday BOOLEAN NOT NULL,
    friday BOOLEAN NOT NULL, saturday BOOLEAN NOT NULL, sunday BOOLEAN NOT NULL,
    PRIMARY KEY (hash, id)
);
CREATE TABLE IF NOT EXISTS service_exceptions (
    hash TEXT NOT NULL, service_id TEXT NOT NULL, date TEXT NOT NULL, exception_type INTEGER NOT NULL,
    PRIMARY KEY (hash, service_id, date)
);
`

func (s *PostgresStorage) GetReader(hash string) (FeedReader, error) {
	// Every loaded feed has at least one agency row, so its absence means
	// the feed was never cached under this hash.
	var found bool
	if err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM agency WHERE hash = $1)`, hash).Scan(&found); err != nil {
		return nil, errors.Wrap(err, "checking for feed")
	}
	if !found {
		return nil, errors.Errorf("feed %s not found", hash)
	}
	return &postgresFeed{id: hash, db: s.db}, nil
}

func (s *PostgresStorage) GetWriter(hash string) (FeedWriter, error) {
	for _, table := range []string{"agency", "stops", "routes", "trips", "stop_times", "services", "service_exceptions"} {
		if _, err := s.db.Exec(`DELETE FROM `+table+` WHERE hash = $1`, hash); err != nil {
			return nil, errors.Wrapf(err, "clearing %s records", table)
		}
	}
	return &postgresFeed{id: hash, db: s.db}, nil
}

type postgresFeed struct {
	id          string
	db          *sql.DB
	stopTimeBuf []model.StopTime
}

func (f *postgresFeed) WriteAgency(a model.Agency) error {
	_, err := f.db.Exec(`INSERT INTO agency (hash, id, name, url, timezone) VALUES ($1, $2, $3, $4, $5)`,
		f.id, a.ID, a.Name, a.URL, a.Timezone)
	return errors.Wrap(err, "inserting agency")
}

func (f *postgresFeed) WriteStop(s model.Stop) error {
	_, err := f.db.Exec(`
INSERT INTO stops (hash, id, name, lat, lon, zone, location_type, parent_station, platform_code)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		f.id, s.ID, s.Name, s.Lat, s.Lon, s.Zone, s.LocationType, s.ParentStation, s.PlatformCode)
	return errors.Wrap(err, "inserting stop")
}

func (f *postgresFeed) WriteRoute(r model.Route) error {
	_, err := f.db.Exec(`INSERT INTO routes (hash, id, short_name, long_name, type, is_night) VALUES ($1, $2, $3, $4, $5, $6)`,
		f.id, r.ID, r.ShortName, r.LongName, r.Type, r.IsNight)
	return errors.Wrap(err, "inserting route")
}

func (f *postgresFeed) BeginTrips() error { return nil }

func (f *postgresFeed) WriteTrip(t model.Trip) error {
	_, err := f.db.Exec(`INSERT INTO trips (hash, id, route_id, service_id, headsign, direction_id) VALUES ($1, $2, $3, $4, $5, $6)`,
		f.id, t.ID, t.RouteID, t.ServiceID, t.Headsign, t.DirectionID)
	return errors.Wrap(err, "inserting trip")
}

func (f *postgresFeed) EndTrips() error { return nil }

func (f *postgresFeed) WriteService(s model.Service) error {
	_, err := f.db.Exec(`
INSERT INTO services (hash, id, start_date, end_date, monday, tuesday, wednesday, thursday, friday, saturday, sunday)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		f.id, s.ID, s.StartDate, s.EndDate,
		s.Weekday[1], s.Weekday[2], s.Weekday[3], s.Weekday[4], s.Weekday[5], s.Weekday[6], s.Weekday[0],
	)
	return errors.Wrap(err, "inserting service")
}

func (f *postgresFeed) WriteServiceException(e model.ServiceException) error {
	_, err := f.db.Exec(`INSERT INTO service_exceptions (hash, service_id, date, exception_type) VALUES ($1, $2, $3, $4)`,
		f.id, e.ServiceID, e.Date, e.Type)
	return errors.Wrap(err, "inserting service exception")
}

func (f *postgresFeed) BeginStopTimes() error { return nil }

// WriteStopTime buffers rows and flushes with pq.CopyIn. stop_times.txt
// is by far the largest file in any real feed, too slow to insert one
// row at a time.
func (f *postgresFeed) WriteStopTime(st model.StopTime) error {
	f.stopTimeBuf = append(f.stopTimeBuf, st)
	if len(f.stopTimeBuf) >= psqlStopTimeBatchSize {
		return f.flushStopTimes()
	}
	return nil
}

func (f *postgresFeed) EndStopTimes() error {
	if len(f.stopTimeBuf) > 0 {
		return f.flushStopTimes()
	}
	return nil
}

func (f *postgresFeed) flushStopTimes() error {
	tx, err := f.db.Begin()
	if err != nil {
		return errors.Wrap(err, "starting transaction")
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(pq.CopyIn(
		"stop_times", "hash", "trip_id", "stop_id", "stop_sequence", "arrival_seconds", "departure_seconds", "headsign", "pickup_type", "drop_off_type",
	))
	if err != nil {
		return errors.Wrap(err, "preparing statement")
	}
	defer stmt.Close()

	for _, st := range f.stopTimeBuf {
		if _, err := stmt.Exec(f.id, st.TripID, st.StopID, st.StopSequence, st.ArrivalSeconds, st.DepartureSeconds, st.Headsign, st.PickupType, st.DropOffType); err != nil {
			return errors.Wrap(err, "copying stop_time")
		}
	}
	if _, err := stmt.Exec(); err != nil {
		return errors.Wrap(err, "executing copy")
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "committing")
	}

	f.stopTimeBuf = nil
	return nil
}

func (f *postgresFeed) Close() error {
	_, err := f.db.Exec(`ANALYZE`)
	return errors.Wrap(err, "analyzing")
}

func (f *postgresFeed) Agencies() ([]model.Agency, error) {
	rows, err := f.db.Query(`SELECT id, name, url, timezone FROM agency WHERE hash = $1`, f.id)
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

func (f *postgresFeed) Stops() ([]model.Stop, error) {
	rows, err := f.db.Query(`SELECT id, name, lat, lon, zone, location_type, parent_station, platform_code FROM stops WHERE hash = $1`, f.id)
	if err != nil {
		return nil, errors.Wrap(err, "querying stops")
	}
	defer rows.Close()

	var stops []model.Stop
	for rows.Next() {
		var s model.Stop
		var zone, parent, platform sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &s.Lat, &s.Lon, &zone, &s.LocationType, &parent, &platform); err != nil {
			return nil, errors.Wrap(err, "scanning stop")
		}
		s.Zone, s.ParentStation, s.PlatformCode = zone.String, parent.String, platform.String
		stops = append(stops, s)
	}
	return stops, nil
}

func (f *postgresFeed) Routes() ([]model.Route, error) {
	rows, err := f.db.Query(`SELECT id, short_name, long_name, type, is_night FROM routes WHERE hash = $1`, f.id)
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

func (f *postgresFeed) Trips() ([]model.Trip, error) {
	rows, err := f.db.Query(`SELECT id, route_id, service_id, headsign, direction_id FROM trips WHERE hash = $1`, f.id)
	if err != nil {
		return nil, errors.Wrap(err, "querying trips")
	}
	defer rows.Close()

	var trips []model.Trip
	for rows.Next() {
		var t model.Trip
		var headsign sql.NullString
		var direction sql.NullInt64
		if err := rows.Scan(&t.ID, &t.RouteID, &t.ServiceID, &headsign, &direction); err != nil {
			return nil, errors.Wrap(err, "scanning trip")
		}
		t.Headsign = headsign.String
		t.DirectionID = int8(direction.Int64)
		trips = append(trips, t)
	}
	return trips, nil
}

func (f *postgresFeed) StopTimes() ([]model.StopTime, error) {
	rows, err := f.db.Query(`
SELECT trip_id, stop_id, stop_sequence, arrival_seconds, departure_seconds, headsign, pickup_type, drop_off_type
FROM stop_times WHERE hash = $1`, f.id)
	if err != nil {
		return nil, errors.Wrap(err, "querying stop_times")
	}
	defer rows.Close()

	var sts []model.StopTime
	for rows.Next() {
		var st model.StopTime
		var headsign sql.NullString
		if err := rows.Scan(&st.TripID, &st.StopID, &st.StopSequence, &st.ArrivalSeconds, &st.DepartureSeconds, &headsign, &st.PickupType, &st.DropOffType); err != nil {
			return nil, errors.Wrap(err, "scanning stop_time")
		}
		st.Headsign = headsign.String
		sts = append(sts, st)
	}
	return sts, nil
}

func (f *postgresFeed) Services() ([]model.Service, error) {
	rows, err := f.db.Query(`
SELECT id, start_date, end_date, monday, tuesday, wednesday, thursday, friday, saturday, sunday
FROM services WHERE hash = $1`, f.id)
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

func (f *postgresFeed) ServiceExceptions() ([]model.ServiceException, error) {
	rows, err := f.db.Query(`SELECT service_id, date, exception_type FROM service_exceptions WHERE hash = $1`, f.id)
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
