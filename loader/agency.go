package loader

import (
	"io"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"transit.dev/earliest/model"
	"transit.dev/earliest/storage"
)

type agencyCSV struct {
	ID       string `csv:"agency_id"`
	Name     string `csv:"agency_name"`
	URL      string `csv:"agency_url"`
	Timezone string `csv:"agency_timezone"`
}

// parseAgency reads agency.txt and returns the set of known agency_ids.
// All agencies in a feed must share the same timezone, per GTFS.
func parseAgency(writer storage.FeedWriter, data io.Reader) (map[string]bool, error) {
	rows := []*agencyCSV{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return nil, &SchemaError{File: "agency.txt", Reason: errors.Wrap(err, "unmarshaling").Error()}
	}

	if len(rows) == 0 {
		return nil, &SchemaError{File: "agency.txt", Reason: "no agency record found"}
	}

	tz := map[string]bool{}
	for _, a := range rows {
		tz[a.Timezone] = true
	}
	if len(tz) != 1 {
		return nil, &SchemaError{File: "agency.txt", Field: "agency_timezone", Reason: "all agencies must share one timezone"}
	}

	timezone := rows[0].Timezone
	if timezone == "" {
		return nil, &SchemaError{File: "agency.txt", Field: "agency_timezone", Reason: "missing"}
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return nil, &SchemaError{File: "agency.txt", Field: "agency_timezone", Reason: errors.Wrap(err, "unknown timezone").Error()}
	}

	known := map[string]bool{}
	for _, a := range rows {
		if known[a.ID] {
			return nil, &SchemaError{File: "agency.txt", Field: "agency_id", Reason: "duplicate: " + a.ID}
		}
		known[a.ID] = true

		if a.Name == "" {
			return nil, &SchemaError{File: "agency.txt", Field: "agency_name", Reason: "missing"}
		}
		if a.URL == "" {
			return nil, &SchemaError{File: "agency.txt", Field: "agency_url", Reason: "missing"}
		}

		err := writer.WriteAgency(model.Agency{
			ID:       a.ID,
			Name:     a.Name,
			URL:      a.URL,
			Timezone: timezone,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "writing agency '%s'", a.ID)
		}
	}

	return known, nil
}
