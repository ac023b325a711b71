package loader

import (
	"io"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"transit.dev/earliest/model"
	"transit.dev/earliest/storage"
)

type routeCSV struct {
	ID        string `csv:"route_id"`
	AgencyID  string `csv:"agency_id"`
	ShortName string `csv:"route_short_name"`
	LongName  string `csv:"route_long_name"`
	Type      string `csv:"route_type"`
	IsNight   int8   `csv:"is_night"`
}

func legalRouteType(t model.RouteType) bool {
	switch t {
	case model.RouteTypeTram, model.RouteTypeSubway, model.RouteTypeRail,
		model.RouteTypeBus, model.RouteTypeFerry, model.RouteTypeCable,
		model.RouteTypeAerial, model.RouteTypeFunicular,
		model.RouteTypeTrolleybus, model.RouteTypeMonorail:
		return true
	}
	return false
}

// parseRoutes reads routes.txt and returns the set of known route_ids.
func parseRoutes(writer storage.FeedWriter, data io.Reader, agency map[string]bool) (map[string]bool, error) {
	rows := []*routeCSV{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return nil, &SchemaError{File: "routes.txt", Reason: errors.Wrap(err, "unmarshaling").Error()}
	}

	known := map[string]bool{}
	for _, r := range rows {
		if known[r.ID] {
			return nil, &SchemaError{File: "routes.txt", Field: "route_id", Reason: "duplicate: " + r.ID}
		}
		known[r.ID] = true

		if r.ID == "" {
			return nil, &SchemaError{File: "routes.txt", Field: "route_id", Reason: "missing"}
		}

		if len(agency) > 1 && r.AgencyID == "" {
			return nil, &SchemaError{File: "routes.txt", Field: "agency_id", Reason: "required when feed has multiple agencies, route_id " + r.ID}
		}
		if r.AgencyID != "" && !agency[r.AgencyID] {
			return nil, &SchemaError{File: "routes.txt", Field: "agency_id", Reason: "unknown: " + r.AgencyID}
		}

		if r.ShortName == "" && r.LongName == "" {
			return nil, &SchemaError{File: "routes.txt", Field: "route_short_name", Reason: "route_id '" + r.ID + "' has neither short nor long name"}
		}

		if r.Type == "" {
			return nil, &SchemaError{File: "routes.txt", Field: "route_type", Reason: "missing for route_id " + r.ID}
		}
		routeType, err := strconv.Atoi(r.Type)
		if err != nil {
			return nil, &SchemaError{File: "routes.txt", Field: "route_type", Reason: errors.Wrapf(err, "route_id '%s'", r.ID).Error()}
		}
		if !legalRouteType(model.RouteType(routeType)) {
			return nil, &SchemaError{File: "routes.txt", Field: "route_type", Reason: "illegal value for route_id " + r.ID}
		}

		if r.IsNight != 0 && r.IsNight != 1 {
			return nil, &SchemaError{File: "routes.txt", Field: "is_night", Reason: "must be 0 or 1 for route_id " + r.ID}
		}

		err = writer.WriteRoute(model.Route{
			ID:        r.ID,
			ShortName: r.ShortName,
			LongName:  r.LongName,
			Type:      model.RouteType(routeType),
			IsNight:   r.IsNight == 1,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "writing route '%s'", r.ID)
		}
	}

	return known, nil
}
