// Package earliest builds a queryable earliest-arrival transit network
// from a GTFS feed directory and answers journey queries over it. It is
// the top-level package that wires the loader, the geospatial index, stop
// grouping, and the time-expanded graph into one build step.
package earliest

import (
	"sort"

	"github.com/pkg/errors"

	"transit.dev/earliest/geo"
	"transit.dev/earliest/graph"
	"transit.dev/earliest/loader"
	"transit.dev/earliest/model"
	"transit.dev/earliest/station"
	"transit.dev/earliest/storage"
)

// Config holds the tunable parameters of a build. The zero value of any
// field falls back to its default.
type Config struct {
	// PedestrianRadiusMeters bounds how far apart two stops may be and
	// still get a walking link between them.
	PedestrianRadiusMeters float64
	// PedestrianSpeedMPS converts a walking distance into a travel time.
	PedestrianSpeedMPS float64
	// MinTransferSeconds is added to every arrival to model platform
	// walking time and the published minimum transfer interval.
	MinTransferSeconds int
	// TargetZone pins the UTM zone stops are projected into. Zero picks
	// the zone containing the mean stop longitude.
	TargetZone int
}

// DefaultConfig returns the configuration used when a caller passes a
// zero-value Config to NewNetwork.
func DefaultConfig() Config {
	return Config{
		PedestrianRadiusMeters: geo.DefaultPedestrianRadiusMeters,
		PedestrianSpeedMPS:     geo.DefaultPedestrianSpeedMPS,
		MinTransferSeconds:     60,
		TargetZone:             0,
	}
}

func (c Config) withDefaults() Config {
	if c.PedestrianRadiusMeters == 0 {
		c.PedestrianRadiusMeters = geo.DefaultPedestrianRadiusMeters
	}
	if c.PedestrianSpeedMPS == 0 {
		c.PedestrianSpeedMPS = geo.DefaultPedestrianSpeedMPS
	}
	if c.MinTransferSeconds == 0 {
		c.MinTransferSeconds = 60
	}
	return c
}

// Network is the composite built artifact: record maps, the compiled
// graph, and the stop-grouping index, all read-only after NewNetwork
// returns.
type Network struct {
	Stops    map[string]model.Stop
	Trips    map[string]model.Trip
	Routes   map[string]model.Route
	Services map[string]model.Service

	Graph    *graph.Graph
	Stations *station.Index
}

// NewNetwork loads dir (consulting store's cache by content hash so a
// repeated load of the same feed skips re-parsing CSV) and compiles a
// Network from the result.
func NewNetwork(dir string, store storage.Storage, cfg Config) (*Network, error) {
	cfg = cfg.withDefaults()

	hash, err := storage.HashFeedDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "hashing feed directory")
	}

	reader, err := store.GetReader(hash)
	if err != nil {
		writer, err := store.GetWriter(hash)
		if err != nil {
			return nil, errors.Wrap(err, "opening feed writer")
		}
		if err := loader.LoadDirectory(writer, dir); err != nil {
			return nil, errors.Wrap(err, "loading feed directory")
		}
		reader, err = store.GetReader(hash)
		if err != nil {
			return nil, errors.Wrap(err, "opening feed reader after load")
		}
	}

	return buildNetwork(reader, cfg)
}

func buildNetwork(reader storage.FeedReader, cfg Config) (*Network, error) {
	stops, err := reader.Stops()
	if err != nil {
		return nil, errors.Wrap(err, "reading stops")
	}
	routes, err := reader.Routes()
	if err != nil {
		return nil, errors.Wrap(err, "reading routes")
	}
	trips, err := reader.Trips()
	if err != nil {
		return nil, errors.Wrap(err, "reading trips")
	}
	stopTimes, err := reader.StopTimes()
	if err != nil {
		return nil, errors.Wrap(err, "reading stop_times")
	}
	services, err := reader.Services()
	if err != nil {
		return nil, errors.Wrap(err, "reading services")
	}
	exceptions, err := reader.ServiceExceptions()
	if err != nil {
		return nil, errors.Wrap(err, "reading service exceptions")
	}

	trips = attachStopTimes(trips, stopTimes)
	services = attachExceptions(services, exceptions)

	projector, err := geo.NewProjector(stops, cfg.TargetZone)
	if err != nil {
		return nil, errors.Wrap(err, "building projector")
	}

	points := make([]geo.Point, 0, len(stops))
	for _, s := range stops {
		x, y, err := projector.Project(s.Lat, s.Lon)
		if err != nil {
			return nil, errors.Wrapf(err, "projecting stop '%s'", s.ID)
		}
		points = append(points, geo.Point{StopID: s.ID, X: x, Y: y})
	}

	grid := geo.NewGrid(points, cfg.PedestrianRadiusMeters)
	links := grid.PedestrianLinks(points)

	pairs := make([]graph.PedestrianPair, 0)
	for from, ls := range links {
		for _, l := range ls {
			pairs = append(pairs, graph.PedestrianPair{From: from, To: l.StopID, Meters: l.Meters})
		}
	}

	g := graph.Build(trips, pairs, cfg.MinTransferSeconds, cfg.PedestrianSpeedMPS)
	stations := station.NewIndex(stops)

	n := &Network{
		Stops:    map[string]model.Stop{},
		Trips:    map[string]model.Trip{},
		Routes:   map[string]model.Route{},
		Services: map[string]model.Service{},
		Graph:    g,
		Stations: stations,
	}
	for _, s := range stops {
		n.Stops[s.ID] = s
	}
	for _, t := range trips {
		n.Trips[t.ID] = t
	}
	for _, r := range routes {
		n.Routes[r.ID] = r
	}
	for _, s := range services {
		n.Services[s.ID] = s
	}

	return n, nil
}

// attachStopTimes groups stopTimes by trip id, sorts each group by
// stop_sequence, and assigns the result to the matching Trip's StopTimes,
// so a loaded Trip's StopTimes is always sorted ascending by
// stop-sequence.
func attachStopTimes(trips []model.Trip, stopTimes []model.StopTime) []model.Trip {
	byTrip := map[string][]model.StopTime{}
	for _, st := range stopTimes {
		byTrip[st.TripID] = append(byTrip[st.TripID], st)
	}
	for tripID := range byTrip {
		sts := byTrip[tripID]
		sort.Slice(sts, func(i, j int) bool { return sts[i].StopSequence < sts[j].StopSequence })
		byTrip[tripID] = sts
	}

	out := make([]model.Trip, len(trips))
	for i, t := range trips {
		t.StopTimes = byTrip[t.ID]
		out[i] = t
	}
	return out
}

// attachExceptions folds calendar_dates rows into their Service's
// Exceptions slice.
func attachExceptions(services []model.Service, exceptions []model.ServiceException) []model.Service {
	byService := map[string][]model.ServiceException{}
	for _, ex := range exceptions {
		byService[ex.ServiceID] = append(byService[ex.ServiceID], ex)
	}
	out := make([]model.Service, len(services))
	for i, s := range services {
		s.Exceptions = byService[s.ID]
		out[i] = s
	}
	return out
}

// GetNode returns the graph node with the given id. It panics if id is
// out of range; an out-of-range id is a programmer error, not a
// recoverable condition.
func (n *Network) GetNode(id int) graph.Node {
	return n.Graph.Nodes[id]
}

// GetStop looks up a Stop by id.
func (n *Network) GetStop(id string) (model.Stop, bool) {
	s, found := n.Stops[id]
	return s, found
}

// GetTrip looks up a Trip by id.
func (n *Network) GetTrip(id string) (model.Trip, bool) {
	t, found := n.Trips[id]
	return t, found
}
