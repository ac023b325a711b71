package earliest

import (
	"time"

	"github.com/pkg/errors"

	"transit.dev/earliest/graph"
	"transit.dev/earliest/model"
)

// Step is one visited node of a Journey, rendered as the presenter needs
// it: a location and the absolute time the journey reaches it.
type Step struct {
	Location graph.Location
	Time     int
}

// Journey is the materialised result of a successful FindJourney call:
// the ordered sequence of nodes visited from the resolved departure seed
// to the resolved destination. No segment merging is performed here; a
// presenter renders boarding/alighting events from Location.Kind.
type Journey struct {
	Steps []Step
}

// FindJourney resolves depName and destName to stop groups, seeds the
// search from the departure group at when's time of day, and runs the
// earliest-arrival search toward the destination group on when's calendar
// date.
func (n *Network) FindJourney(depName, destName string, when time.Time) (*Journey, error) {
	depGroup, err := n.Stations.Resolve(depName)
	if err != nil {
		return nil, errors.Wrap(ErrUnknownDepartureStop, err.Error())
	}

	destGroup, err := n.Stations.Resolve(destName)
	if err != nil {
		return nil, errors.Wrap(ErrUnknownDestinationStop, err.Error())
	}

	fromSeconds := when.Hour()*3600 + when.Minute()*60 + when.Second()
	seeds := n.Graph.SeedsForGroup(depGroup.Stops, fromSeconds)

	destStops := map[string]bool{}
	for _, s := range destGroup.Stops {
		destStops[s] = true
	}

	lookup := func(serviceID string) (*model.Service, bool) {
		s, found := n.Services[serviceID]
		if !found {
			return nil, false
		}
		return &s, true
	}

	result, err := n.Graph.Search(seeds, destStops, when, lookup)
	if err != nil {
		return nil, err
	}

	steps := make([]Step, len(result.Nodes))
	for i, id := range result.Nodes {
		node := n.Graph.Nodes[id]
		steps[i] = Step{Location: node.Location, Time: node.Time}
	}

	return &Journey{Steps: steps}, nil
}
