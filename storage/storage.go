// Package storage caches the records a feed directory parses into, keyed
// by the SHA-256 of the seven files' contents, so repeated loads of the
// same feed skip re-parsing CSV. It holds nothing beyond those raw records:
// the compiled graph is rebuilt fresh on every load and never stored here.
package storage

import "transit.dev/earliest/model"

// Storage is the cache's entry point: a writer to populate a feed under a
// given hash, and a reader to retrieve one already cached.
type Storage interface {
	GetWriter(hash string) (FeedWriter, error)
	GetReader(hash string) (FeedReader, error)
}

// FeedWriter accepts records for a single feed. Trips and stop_times are
// bracketed with Begin/End calls, as stop_times.txt tends to be the
// largest file by a wide margin and backends may want to batch or
// transaction around it.
type FeedWriter interface {
	WriteAgency(agency model.Agency) error
	WriteStop(stop model.Stop) error
	WriteRoute(route model.Route) error

	BeginTrips() error
	WriteTrip(trip model.Trip) error
	EndTrips() error

	WriteService(service model.Service) error
	WriteServiceException(ex model.ServiceException) error

	BeginStopTimes() error
	WriteStopTime(st model.StopTime) error
	EndStopTimes() error

	Close() error
}

// FeedReader retrieves the records written through a FeedWriter for the
// same hash. Trip records come back without their StopTimes populated and
// Service records without their Exceptions; callers reassemble both from
// StopTimes() and ServiceExceptions() themselves, same as the loader does
// on a fresh parse.
type FeedReader interface {
	Agencies() ([]model.Agency, error)
	Stops() ([]model.Stop, error)
	Routes() ([]model.Route, error)
	Trips() ([]model.Trip, error)
	StopTimes() ([]model.StopTime, error)
	Services() ([]model.Service, error)
	ServiceExceptions() ([]model.ServiceException, error)
}
