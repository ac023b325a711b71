package loader

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"transit.dev/earliest/model"
	"transit.dev/earliest/storage"
)

type stopCSV struct {
	ID            string  `csv:"stop_id"`
	Name          string  `csv:"stop_name"`
	Lat           float64 `csv:"stop_lat"`
	Lon           float64 `csv:"stop_lon"`
	Zone          string  `csv:"zone_id"`
	LocationType  int8    `csv:"location_type"`
	ParentStation string  `csv:"parent_station"`
	PlatformCode  string  `csv:"platform_code"`
}

// parseStops reads stops.txt and returns the set of known stop_ids.
func parseStops(writer storage.FeedWriter, data io.Reader) (map[string]bool, error) {
	rows := []*stopCSV{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return nil, &SchemaError{File: "stops.txt", Reason: errors.Wrap(err, "unmarshaling").Error()}
	}

	known := map[string]bool{}
	parentRef := map[string]string{}
	for _, s := range rows {
		if known[s.ID] {
			return nil, &SchemaError{File: "stops.txt", Field: "stop_id", Reason: "duplicate: " + s.ID}
		}
		known[s.ID] = true

		if s.ID == "" {
			return nil, &SchemaError{File: "stops.txt", Field: "stop_id", Reason: "missing"}
		}

		locationType := model.LocationType(s.LocationType)

		// stop_name/stop_lat/stop_lon are optional for generic nodes
		// and boarding areas, required otherwise.
		if locationType != model.LocationTypeGenericNode && locationType != model.LocationTypeBoardingArea {
			if s.Name == "" {
				return nil, &SchemaError{File: "stops.txt", Field: "stop_name", Reason: "missing for stop_id " + s.ID}
			}
			if s.Lat == 0 && s.Lon == 0 {
				return nil, &SchemaError{File: "stops.txt", Field: "stop_lat/stop_lon", Reason: "missing for stop_id " + s.ID}
			}
		}

		if s.ParentStation != "" {
			parentRef[s.ID] = s.ParentStation
		}

		err := writer.WriteStop(model.Stop{
			ID:            s.ID,
			Name:          s.Name,
			Lat:           s.Lat,
			Lon:           s.Lon,
			Zone:          s.Zone,
			LocationType:  locationType,
			ParentStation: s.ParentStation,
			PlatformCode:  s.PlatformCode,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "writing stop '%s'", s.ID)
		}
	}

	for stopID, parentID := range parentRef {
		if !known[parentID] {
			return nil, &SchemaError{File: "stops.txt", Field: "parent_station", Reason: "stop '" + stopID + "' references unknown parent '" + parentID + "'"}
		}
	}

	return known, nil
}
