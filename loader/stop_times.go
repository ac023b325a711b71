package loader

import (
	"io"
	"sort"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"transit.dev/earliest/model"
	"transit.dev/earliest/storage"
)

type stopTimeCSV struct {
	TripID        string `csv:"trip_id"`
	StopID        string `csv:"stop_id"`
	StopSequence  uint32 `csv:"stop_sequence"`
	ArrivalTime   string `csv:"arrival_time"`
	DepartureTime string `csv:"departure_time"`
	Headsign      string `csv:"stop_headsign"`
	PickupType    int8   `csv:"pickup_type"`
	DropOffType   int8   `csv:"drop_off_type"`
}

// parseStopTimes reads stop_times.txt, writing each row through writer and
// returning the full set of parsed rows sorted by (trip_id, stop_sequence)
// so callers can assemble each trip's StopTimes slice.
func parseStopTimes(writer storage.FeedWriter, data io.Reader, trips, stops map[string]bool) ([]model.StopTime, error) {
	rows := []*stopTimeCSV{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return nil, &SchemaError{File: "stop_times.txt", Reason: errors.Wrap(err, "unmarshaling").Error()}
	}

	stopTimes := make([]model.StopTime, 0, len(rows))
	seqSeen := map[string]map[uint32]bool{}

	for _, st := range rows {
		if !trips[st.TripID] {
			return nil, &SchemaError{File: "stop_times.txt", Field: "trip_id", Reason: "unknown: " + st.TripID}
		}
		if st.StopID == "" || !stops[st.StopID] {
			return nil, &SchemaError{File: "stop_times.txt", Field: "stop_id", Reason: "unknown: " + st.StopID}
		}

		if seqSeen[st.TripID] == nil {
			seqSeen[st.TripID] = map[uint32]bool{}
		}
		if seqSeen[st.TripID][st.StopSequence] {
			return nil, &SchemaError{File: "stop_times.txt", Field: "stop_sequence", Reason: "duplicate for trip " + st.TripID}
		}
		seqSeen[st.TripID][st.StopSequence] = true

		arrival, err := model.ParseTimeOfDay(st.ArrivalTime)
		if err != nil {
			return nil, &SchemaError{File: "stop_times.txt", Field: "arrival_time", Reason: err.Error()}
		}
		departure, err := model.ParseTimeOfDay(st.DepartureTime)
		if err != nil {
			return nil, &SchemaError{File: "stop_times.txt", Field: "departure_time", Reason: err.Error()}
		}

		stopTime := model.StopTime{
			TripID:           st.TripID,
			StopID:           st.StopID,
			Headsign:         st.Headsign,
			StopSequence:     st.StopSequence,
			ArrivalSeconds:   arrival,
			DepartureSeconds: departure,
			PickupType:       st.PickupType,
			DropOffType:      st.DropOffType,
		}

		stopTimes = append(stopTimes, stopTime)
		if err := writer.WriteStopTime(stopTime); err != nil {
			return nil, errors.Wrapf(err, "writing stop_time for trip '%s'", st.TripID)
		}
	}

	sort.SliceStable(stopTimes, func(i, j int) bool {
		if stopTimes[i].TripID != stopTimes[j].TripID {
			return stopTimes[i].TripID < stopTimes[j].TripID
		}
		return stopTimes[i].StopSequence < stopTimes[j].StopSequence
	})

	return stopTimes, nil
}
