// Package geo projects GTFS stop coordinates from WGS84 onto a metric
// planar frame and enumerates short walking links between nearby stops.
package geo

import (
	"math"

	"github.com/pkg/errors"
	"github.com/wroge/wgs84"

	"transit.dev/earliest/model"
)

// DefaultPedestrianRadiusMeters is the default walking radius for
// pedestrian-link enumeration.
const DefaultPedestrianRadiusMeters = 500.0

// DefaultPedestrianSpeedMPS is the default walking speed used to convert a
// projected distance into a walk time.
const DefaultPedestrianSpeedMPS = 1.0

// Projector converts WGS84 (lat, lon) coordinates into a single UTM zone's
// planar (easting, northing) frame. A feed-wide single zone keeps every
// stop's coordinates comparable, even for the rare stop that falls just
// outside the usual 6°-wide band for its zone.
type Projector struct {
	zoneNumber int
	transform  wgs84.Func
}

// NewProjector builds a Projector for the given stops. If targetZone is 0,
// the zone containing the mean longitude of all stops is used. The
// hemisphere is taken from the mean latitude (northern when there are no
// stops to average).
func NewProjector(stops []model.Stop, targetZone int) (*Projector, error) {
	var sumLat, sumLon float64
	for _, s := range stops {
		sumLat += s.Lat
		sumLon += s.Lon
	}

	zone := targetZone
	if zone == 0 {
		if len(stops) == 0 {
			return nil, errors.New("cannot pick a default UTM zone: no stops")
		}
		zone = zoneForLongitude(sumLon / float64(len(stops)))
	}
	if zone < 1 || zone > 60 {
		return nil, errors.Errorf("invalid UTM zone %d", zone)
	}

	northern := true
	if len(stops) > 0 {
		northern = sumLat/float64(len(stops)) >= 0
	}

	return &Projector{
		zoneNumber: zone,
		transform:  wgs84.LonLat().To(wgs84.UTM(float64(zone), northern)),
	}, nil
}

// zoneForLongitude returns the UTM zone number (1..60) containing the
// given WGS84 longitude.
func zoneForLongitude(lon float64) int {
	zone := int(math.Floor((lon+180.0)/6.0)) + 1
	if zone < 1 {
		zone = 1
	}
	if zone > 60 {
		zone = 60
	}
	return zone
}

// Project converts a WGS84 (lat, lon) pair into this Projector's planar
// (x, y) frame, in metres.
func (p *Projector) Project(lat, lon float64) (x, y float64, err error) {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || lat < -90 || lat > 90 {
		return 0, 0, errors.Errorf("latitude %f out of range", lat)
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) || lon < -180 || lon > 180 {
		return 0, 0, errors.Errorf("longitude %f out of range", lon)
	}
	x, y, _ = p.transform(lon, lat, 0)
	return x, y, nil
}
