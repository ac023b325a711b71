package graph

import (
	"math"
	"sort"

	"transit.dev/earliest/model"
)

// PedestrianPair is a permitted short walk between two stops, with the
// projected distance between them in metres. Symmetric pairs (and the
// self-pair for each stop) are expected to already be present in the
// slice passed to Build; geo.Grid.PedestrianLinks enumerates them that way.
type PedestrianPair struct {
	From, To string
	Meters   float64
}

// Graph is the time-expanded directed graph compiled by Build: a dense
// node array plus the per-stop time-sorted chain index used both to finish
// building the graph (Pass 3) and to seed/terminate searches over it.
type Graph struct {
	Nodes []Node

	// StopNodeChain[s] lists, ascending by Time, every node id whose
	// Location is AtStop(s).
	StopNodeChain map[string][]int

	// Walks[s] lists the stops reachable on foot from s (s itself
	// included, at zero cost, via the self-pair) with the walk time in
	// whole seconds. SeedsForGroup uses it so a query can start with a
	// walk to a nearby stop the departure stop itself never boards.
	Walks map[string][]Walk
}

// Walk is a pedestrian transfer out of a stop, with its travel time
// precomputed from the configured walking speed.
type Walk struct {
	StopID  string
	Seconds int
}

func (g *Graph) addNode(loc Location, time int) int {
	id := len(g.Nodes)
	g.Nodes = append(g.Nodes, Node{ID: id, Time: time, Location: loc})
	return id
}

func (g *Graph) addEdge(from, to int) {
	g.Nodes[from].Edges = append(g.Nodes[from].Edges, to)
}

// Build compiles trips (each OnTrip node carrying its trip's service id)
// and a set of pedestrian pairs into a Graph, in three passes: trip
// chains, per-stop chains, pedestrian links.
//
// Trips are iterated in sorted trip-id order regardless of the order
// they're passed in, so that node-id assignment (and hence every Graph
// this function produces from the same input) is deterministic across
// runs.
func Build(trips []model.Trip, pedestrianPairs []PedestrianPair, minTransferSeconds int, pedestrianSpeedMPS float64) *Graph {
	g := &Graph{StopNodeChain: map[string][]int{}, Walks: map[string][]Walk{}}

	sorted := make([]model.Trip, len(trips))
	copy(sorted, trips)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	// Pass 1: trip chains. Collect AtStop node ids per stop as we go;
	// Pass 2 sorts and chains them.
	atStopNodes := map[string][]int{}

	for _, trip := range sorted {
		prevTransport := -1

		for _, st := range trip.StopTimes {
			transport := g.addNode(OnTripLocation(trip.ID, trip.ServiceID), st.DepartureSeconds)
			dep := g.addNode(AtStopLocation(st.StopID), st.DepartureSeconds)
			arr := g.addNode(AtStopLocation(st.StopID), st.ArrivalSeconds+minTransferSeconds)

			g.addEdge(dep, transport)
			g.addEdge(transport, arr)
			if prevTransport >= 0 {
				g.addEdge(prevTransport, transport)
			}
			prevTransport = transport

			atStopNodes[st.StopID] = append(atStopNodes[st.StopID], dep, arr)
		}
	}

	// Pass 2: per-stop chains.
	for stopID, nodeIDs := range atStopNodes {
		sort.SliceStable(nodeIDs, func(i, j int) bool {
			return g.Nodes[nodeIDs[i]].Time < g.Nodes[nodeIDs[j]].Time
		})
		for i := 0; i+1 < len(nodeIDs); i++ {
			g.addEdge(nodeIDs[i], nodeIDs[i+1])
		}
		g.StopNodeChain[stopID] = nodeIDs
	}

	// Pass 3: pedestrian links.
	for _, pair := range pedestrianPairs {
		delta := int(math.Ceil(pair.Meters / pedestrianSpeedMPS))
		g.Walks[pair.From] = append(g.Walks[pair.From], Walk{StopID: pair.To, Seconds: delta})

		chain := g.StopNodeChain[pair.To]
		if len(chain) == 0 {
			continue
		}

		for _, u := range g.StopNodeChain[pair.From] {
			threshold := g.Nodes[u].Time + delta
			i := sort.Search(len(chain), func(i int) bool {
				return g.Nodes[chain[i]].Time >= threshold
			})
			if i < len(chain) {
				g.addEdge(u, chain[i])
			}
		}
	}

	return g
}
