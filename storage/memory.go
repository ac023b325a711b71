package storage

import (
	"github.com/pkg/errors"

	"transit.dev/earliest/model"
)

// MemoryStorage is the default Storage backend: an in-process map of
// parsed feeds. It holds only records, with no feed-metadata or
// refresh-request bookkeeping.
type MemoryStorage struct {
	feeds map[string]*memoryFeed
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{feeds: map[string]*memoryFeed{}}
}

func (s *MemoryStorage) GetReader(hash string) (FeedReader, error) {
	f, found := s.feeds[hash]
	if !found {
		return nil, errors.Errorf("feed %s not found", hash)
	}
	return f, nil
}

func (s *MemoryStorage) GetWriter(hash string) (FeedWriter, error) {
	f := &memoryFeed{}
	s.feeds[hash] = f
	return f, nil
}

type memoryFeed struct {
	agencies   []model.Agency
	stops      []model.Stop
	routes     []model.Route
	trips      []model.Trip
	stopTimes  []model.StopTime
	services   []model.Service
	exceptions []model.ServiceException
}

func (f *memoryFeed) WriteAgency(a model.Agency) error {
	f.agencies = append(f.agencies, a)
	return nil
}
func (f *memoryFeed) WriteStop(s model.Stop) error   { f.stops = append(f.stops, s); return nil }
func (f *memoryFeed) WriteRoute(r model.Route) error { f.routes = append(f.routes, r); return nil }

func (f *memoryFeed) BeginTrips() error { return nil }
func (f *memoryFeed) WriteTrip(t model.Trip) error {
	t.StopTimes = nil
	f.trips = append(f.trips, t)
	return nil
}
func (f *memoryFeed) EndTrips() error { return nil }

func (f *memoryFeed) WriteService(s model.Service) error {
	s.Exceptions = nil
	f.services = append(f.services, s)
	return nil
}
func (f *memoryFeed) WriteServiceException(e model.ServiceException) error {
	f.exceptions = append(f.exceptions, e)
	return nil
}

func (f *memoryFeed) BeginStopTimes() error { return nil }
func (f *memoryFeed) WriteStopTime(st model.StopTime) error {
	f.stopTimes = append(f.stopTimes, st)
	return nil
}
func (f *memoryFeed) EndStopTimes() error { return nil }

func (f *memoryFeed) Close() error { return nil }

func (f *memoryFeed) Agencies() ([]model.Agency, error)    { return f.agencies, nil }
func (f *memoryFeed) Stops() ([]model.Stop, error)         { return f.stops, nil }
func (f *memoryFeed) Routes() ([]model.Route, error)       { return f.routes, nil }
func (f *memoryFeed) Trips() ([]model.Trip, error)         { return f.trips, nil }
func (f *memoryFeed) StopTimes() ([]model.StopTime, error) { return f.stopTimes, nil }
func (f *memoryFeed) Services() ([]model.Service, error)   { return f.services, nil }
func (f *memoryFeed) ServiceExceptions() ([]model.ServiceException, error) {
	return f.exceptions, nil
}
