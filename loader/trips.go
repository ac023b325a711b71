package loader

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"transit.dev/earliest/model"
	"transit.dev/earliest/storage"
)

type tripCSV struct {
	ID          string `csv:"trip_id"`
	RouteID     string `csv:"route_id"`
	ServiceID   string `csv:"service_id"`
	Headsign    string `csv:"trip_headsign"`
	DirectionID int8   `csv:"direction_id"`
}

// parseTrips reads trips.txt and returns the set of known trip_ids.
func parseTrips(writer storage.FeedWriter, data io.Reader, routes, services map[string]bool) (map[string]bool, error) {
	rows := []*tripCSV{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return nil, &SchemaError{File: "trips.txt", Reason: errors.Wrap(err, "unmarshaling").Error()}
	}

	known := map[string]bool{}
	for _, t := range rows {
		if known[t.ID] {
			return nil, &SchemaError{File: "trips.txt", Field: "trip_id", Reason: "duplicate: " + t.ID}
		}
		known[t.ID] = true

		if t.ID == "" {
			return nil, &SchemaError{File: "trips.txt", Field: "trip_id", Reason: "missing"}
		}
		if t.RouteID == "" || !routes[t.RouteID] {
			return nil, &SchemaError{File: "trips.txt", Field: "route_id", Reason: "unknown route_id for trip " + t.ID}
		}
		if t.ServiceID == "" || !services[t.ServiceID] {
			return nil, &SchemaError{File: "trips.txt", Field: "service_id", Reason: "unknown service_id for trip " + t.ID}
		}
		if t.DirectionID != 0 && t.DirectionID != 1 {
			return nil, &SchemaError{File: "trips.txt", Field: "direction_id", Reason: "must be 0 or 1 for trip " + t.ID}
		}

		err := writer.WriteTrip(model.Trip{
			ID:          t.ID,
			RouteID:     t.RouteID,
			ServiceID:   t.ServiceID,
			Headsign:    t.Headsign,
			DirectionID: t.DirectionID,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "writing trip '%s'", t.ID)
		}
	}

	return known, nil
}
