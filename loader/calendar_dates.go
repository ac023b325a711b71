package loader

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"transit.dev/earliest/model"
	"transit.dev/earliest/storage"
)

type calendarDateCSV struct {
	ServiceID     string `csv:"service_id"`
	Date          string `csv:"date"`
	ExceptionType int8   `csv:"exception_type"`
}

// parseCalendarDates reads calendar_dates.txt and returns the exceptions
// found, plus the set of service_ids referenced only there (not already
// known from calendar.txt).
func parseCalendarDates(data io.Reader, knownServices map[string]bool) ([]model.ServiceException, map[string]bool, error) {
	rows := []*calendarDateCSV{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return nil, nil, &SchemaError{File: "calendar_dates.txt", Reason: errors.Wrap(err, "unmarshaling").Error()}
	}

	seenServiceDate := map[string]bool{}
	newServices := map[string]bool{}
	exceptions := make([]model.ServiceException, 0, len(rows))

	for _, cd := range rows {
		if cd.ExceptionType != int8(model.ExceptionAdded) && cd.ExceptionType != int8(model.ExceptionRemoved) {
			return nil, nil, &SchemaError{File: "calendar_dates.txt", Field: "exception_type", Reason: "illegal value for service " + cd.ServiceID}
		}

		if _, err := model.ParseServiceDate(cd.Date); err != nil {
			return nil, nil, &SchemaError{File: "calendar_dates.txt", Field: "date", Reason: err.Error()}
		}

		key := cd.ServiceID + "/" + cd.Date
		if seenServiceDate[key] {
			return nil, nil, &SchemaError{File: "calendar_dates.txt", Reason: "duplicate service/date: " + key}
		}
		seenServiceDate[key] = true

		if !knownServices[cd.ServiceID] {
			newServices[cd.ServiceID] = true
		}

		exceptions = append(exceptions, model.ServiceException{
			ServiceID: cd.ServiceID,
			Date:      cd.Date,
			Type:      model.ExceptionType(cd.ExceptionType),
		})
	}

	return exceptions, newServices, nil
}

func writeServiceExceptions(writer storage.FeedWriter, exceptions []model.ServiceException) error {
	for _, ex := range exceptions {
		if err := writer.WriteServiceException(ex); err != nil {
			return errors.Wrapf(err, "writing service exception for '%s'", ex.ServiceID)
		}
	}
	return nil
}

// mergeServiceExceptions folds calendar_dates.txt exceptions into the
// Service records parsed from calendar.txt, adding a bare Service (no
// weekday/date-range pattern, calendar_dates-only) for any service_id that
// calendar_dates.txt references but calendar.txt never defined.
func mergeServiceExceptions(services []model.Service, exceptions []model.ServiceException, newIDs map[string]bool) []model.Service {
	index := map[string]int{}
	for i, s := range services {
		index[s.ID] = i
	}
	for id := range newIDs {
		index[id] = len(services)
		services = append(services, model.Service{ID: id})
	}
	for _, ex := range exceptions {
		i := index[ex.ServiceID]
		services[i].Exceptions = append(services[i].Exceptions, ex)
	}
	return services
}
