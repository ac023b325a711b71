package graph

import (
	"container/heap"
	"sort"
	"time"

	"github.com/pkg/errors"

	"transit.dev/earliest/model"
)

// ErrNoJourney is returned when the search frontier empties without ever
// reaching a member of the destination group.
var ErrNoJourney = errors.New("no journey found")

// item is one entry on the search frontier: a candidate settle time for a
// node. Re-insertion on relaxation is permitted; Search skips stale entries
// by checking the popped time against best[node].
type item struct {
	node int
	time int
}

type frontier []item

func (f frontier) Len() int            { return len(f) }
func (f frontier) Less(i, j int) bool  { return f[i].time < f[j].time }
func (f frontier) Swap(i, j int)       { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x interface{}) { *f = append(*f, x.(item)) }
func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	popped := old[n-1]
	*f = old[:n-1]
	return popped
}

// ServiceLookup resolves a service-id to the Service record the search
// needs to check calendar validity during edge relaxation.
type ServiceLookup func(serviceID string) (*model.Service, bool)

// Result is the settled path from a seed to the destination node, as raw
// node ids in visitation order. reconstruct does no segment merging — the
// caller renders boarding/alighting events from the node kinds.
type Result struct {
	Nodes []int
}

// Search runs earliest-arrival Dijkstra from the given seed nodes (already
// carrying their seed time via g.Nodes[id].Time) toward any node whose
// location is AtStop(s) for s in destStops, on the given query date.
//
// The priority queue is keyed by node time ascending; an edge into an
// OnTrip node is admissible only if its service operates on the query
// date; every other edge is always admissible.
func (g *Graph) Search(seeds []int, destStops map[string]bool, date time.Time, lookupService ServiceLookup) (*Result, error) {
	best := make([]int, len(g.Nodes))
	parent := make([]int, len(g.Nodes))
	settled := make([]bool, len(g.Nodes))
	for i := range best {
		best[i] = -1
		parent[i] = -1
	}

	pq := &frontier{}
	heap.Init(pq)
	for _, s := range seeds {
		best[s] = g.Nodes[s].Time
		heap.Push(pq, item{node: s, time: g.Nodes[s].Time})
	}

	for pq.Len() > 0 {
		top := heap.Pop(pq).(item)
		u := top.node
		if settled[u] {
			continue
		}
		if top.time != best[u] {
			continue // stale entry
		}
		settled[u] = true

		loc := g.Nodes[u].Location
		if loc.Kind == AtStop && destStops[loc.StopID] {
			return &Result{Nodes: reconstruct(parent, u)}, nil
		}

		for _, v := range g.Nodes[u].Edges {
			if settled[v] {
				continue
			}

			vloc := g.Nodes[v].Location
			if vloc.Kind == OnTrip {
				svc, found := lookupService(vloc.ServiceID)
				if !found || !svc.OperatesOn(date) {
					continue
				}
			}

			cand := g.Nodes[v].Time
			if best[v] == -1 || cand < best[v] {
				best[v] = cand
				parent[v] = u
				heap.Push(pq, item{node: v, time: cand})
			}
		}
	}

	return nil, ErrNoJourney
}

func reconstruct(parent []int, dest int) []int {
	var path []int
	for n := dest; n != -1; n = parent[n] {
		path = append(path, n)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// SeedsForGroup finds the earliest boardable node for every stop in
// stopIDs: the first node on the stop's own chain with time >= fromSeconds,
// plus, for every walk out of the stop, the first node at the walk's
// target reachable after covering the walk time on foot. Seeding through
// walks is what lets a journey start at a stop no trip ever visits, as
// long as a served stop is within walking distance. Stops nothing reaches
// are skipped.
func (g *Graph) SeedsForGroup(stopIDs []string, fromSeconds int) []int {
	var seeds []int
	seen := map[int]bool{}

	add := func(stopID string, earliest int) {
		chain := g.StopNodeChain[stopID]
		i := sort.Search(len(chain), func(i int) bool {
			return g.Nodes[chain[i]].Time >= earliest
		})
		if i < len(chain) && !seen[chain[i]] {
			seen[chain[i]] = true
			seeds = append(seeds, chain[i])
		}
	}

	for _, stopID := range stopIDs {
		add(stopID, fromSeconds)
		for _, w := range g.Walks[stopID] {
			add(w.StopID, fromSeconds+w.Seconds)
		}
	}

	return seeds
}
