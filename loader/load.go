// Package loader reads a GTFS feed directory (agency.txt, stops.txt,
// routes.txt, trips.txt, stop_times.txt, calendar.txt,
// calendar_dates.txt) and writes the parsed records through a
// storage.FeedWriter. Feeds are distributed as zip archives by most
// agencies; callers are expected to have already unpacked one into a
// directory before calling LoadDirectory.
package loader

import (
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/spkg/bom"

	"transit.dev/earliest/model"
	"transit.dev/earliest/storage"
)

func init() {
	// LazyCSVReader survives sloppy use of quotes, which real-world
	// feeds are full of. The BOM reader strips a leading unicode BOM
	// if present.
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		return gocsv.LazyCSVReader(bom.NewReader(in))
	})
}

func openFeedFile(dir, name string) (*os.File, error) {
	return os.Open(filepath.Join(dir, name))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadDirectory parses every GTFS file in dir and writes the result
// through writer. It is all-or-nothing: the first invalid row anywhere
// aborts the load and returns a *SchemaError.
func LoadDirectory(writer storage.FeedWriter, dir string) error {
	for _, name := range []string{"agency.txt", "routes.txt", "stops.txt", "trips.txt", "stop_times.txt"} {
		if !fileExists(filepath.Join(dir, name)) {
			return &SchemaError{File: name, Reason: "missing"}
		}
	}
	hasCalendar := fileExists(filepath.Join(dir, "calendar.txt"))
	hasCalendarDates := fileExists(filepath.Join(dir, "calendar_dates.txt"))
	if !hasCalendar && !hasCalendarDates {
		return &SchemaError{File: "calendar.txt", Reason: "feed has neither calendar.txt nor calendar_dates.txt"}
	}

	agencyFile, err := openFeedFile(dir, "agency.txt")
	if err != nil {
		return errors.Wrap(err, "opening agency.txt")
	}
	defer agencyFile.Close()
	agency, err := parseAgency(writer, agencyFile)
	if err != nil {
		return err
	}

	routesFile, err := openFeedFile(dir, "routes.txt")
	if err != nil {
		return errors.Wrap(err, "opening routes.txt")
	}
	defer routesFile.Close()
	routes, err := parseRoutes(writer, routesFile, agency)
	if err != nil {
		return err
	}

	var calendarServices []model.Service
	if hasCalendar {
		calendarFile, err := openFeedFile(dir, "calendar.txt")
		if err != nil {
			return errors.Wrap(err, "opening calendar.txt")
		}
		defer calendarFile.Close()
		calendarServices, err = parseCalendar(calendarFile)
		if err != nil {
			return err
		}
	}

	knownServices := map[string]bool{}
	for _, s := range calendarServices {
		knownServices[s.ID] = true
	}

	finalServices := calendarServices
	var exceptions []model.ServiceException
	if hasCalendarDates {
		cdFile, err := openFeedFile(dir, "calendar_dates.txt")
		if err != nil {
			return errors.Wrap(err, "opening calendar_dates.txt")
		}
		defer cdFile.Close()
		var newIDs map[string]bool
		exceptions, newIDs, err = parseCalendarDates(cdFile, knownServices)
		if err != nil {
			return err
		}
		finalServices = mergeServiceExceptions(calendarServices, exceptions, newIDs)
	}

	if err := writeServices(writer, finalServices); err != nil {
		return err
	}
	if err := writeServiceExceptions(writer, exceptions); err != nil {
		return err
	}

	services := map[string]bool{}
	for _, s := range finalServices {
		services[s.ID] = true
	}

	if err := writer.BeginTrips(); err != nil {
		return errors.Wrap(err, "beginning trips")
	}
	tripsFile, err := openFeedFile(dir, "trips.txt")
	if err != nil {
		return errors.Wrap(err, "opening trips.txt")
	}
	defer tripsFile.Close()
	trips, err := parseTrips(writer, tripsFile, routes, services)
	if err != nil {
		return err
	}
	if err := writer.EndTrips(); err != nil {
		return errors.Wrap(err, "ending trips")
	}

	stopsFile, err := openFeedFile(dir, "stops.txt")
	if err != nil {
		return errors.Wrap(err, "opening stops.txt")
	}
	defer stopsFile.Close()
	stops, err := parseStops(writer, stopsFile)
	if err != nil {
		return err
	}

	if err := writer.BeginStopTimes(); err != nil {
		return errors.Wrap(err, "beginning stop_times")
	}
	stopTimesFile, err := openFeedFile(dir, "stop_times.txt")
	if err != nil {
		return errors.Wrap(err, "opening stop_times.txt")
	}
	defer stopTimesFile.Close()
	if _, err := parseStopTimes(writer, stopTimesFile, trips, stops); err != nil {
		return err
	}
	if err := writer.EndStopTimes(); err != nil {
		return errors.Wrap(err, "ending stop_times")
	}

	return writer.Close()
}
