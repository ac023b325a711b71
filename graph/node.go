// Package graph compiles GTFS trips, stops and pedestrian links into the
// time-expanded directed graph the query engine searches: one vertex per
// (place, time) pair, edges for vehicle movement, dwell transfers,
// same-stop re-boarding, and short walks.
package graph

// LocationKind tags a Node's Location variant.
type LocationKind int8

const (
	// AtStop nodes sit at a physical stop at a point in time.
	AtStop LocationKind = iota
	// OnTrip nodes represent riding a specific trip, starting at the
	// time the vehicle departs the stop that created this node.
	OnTrip
)

// Location is the tagged variant carried by every Node: either a place
// (AtStop) or a vehicle movement (OnTrip). OnTrip carries the service id
// alongside the trip id so the query engine can check calendar validity
// during edge relaxation without a trip-table lookup.
type Location struct {
	Kind LocationKind

	StopID string // valid when Kind == AtStop

	TripID    string // valid when Kind == OnTrip
	ServiceID string // valid when Kind == OnTrip
}

// AtStopLocation builds an AtStop location.
func AtStopLocation(stopID string) Location {
	return Location{Kind: AtStop, StopID: stopID}
}

// OnTripLocation builds an OnTrip location.
func OnTripLocation(tripID, serviceID string) Location {
	return Location{Kind: OnTrip, TripID: tripID, ServiceID: serviceID}
}

// Node is one vertex of the time-expanded graph. Its ID is its position in
// the dense Graph.Nodes array — nodes reference each other by this integer
// id, never by pointer, which is what keeps the graph's ownership acyclic.
type Node struct {
	ID       int
	Time     int // seconds since midnight of the service day; may exceed 86400
	Location Location
	Edges    []int // out-edge target node ids; always non-decreasing in Time
}
