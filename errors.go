package earliest

import (
	"github.com/pkg/errors"

	"transit.dev/earliest/graph"
)

// ErrUnknownDepartureStop is returned by FindJourney when the departure
// name does not resolve to any StopGroup.
var ErrUnknownDepartureStop = errors.New("unknown departure stop")

// ErrUnknownDestinationStop is returned by FindJourney when the
// destination name does not resolve to any StopGroup.
var ErrUnknownDestinationStop = errors.New("unknown destination stop")

// ErrNoJourney is returned by FindJourney when the search exhausts the
// graph without reaching the destination group. It is the same sentinel
// graph.Search returns; re-exported here so callers of this package's
// façade never need to import graph just to check the error.
var ErrNoJourney = graph.ErrNoJourney
