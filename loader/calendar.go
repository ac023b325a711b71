package loader

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"transit.dev/earliest/model"
	"transit.dev/earliest/storage"
)

type calendarCSV struct {
	ServiceID string `csv:"service_id"`
	StartDate string `csv:"start_date"`
	EndDate   string `csv:"end_date"`
	Monday    int8   `csv:"monday"`
	Tuesday   int8   `csv:"tuesday"`
	Wednesday int8   `csv:"wednesday"`
	Thursday  int8   `csv:"thursday"`
	Friday    int8   `csv:"friday"`
	Saturday  int8   `csv:"saturday"`
	Sunday    int8   `csv:"sunday"`
}

func parseDayFlag(v int8) (bool, error) {
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errors.Errorf("invalid value '%d', want 0 or 1", v)
	}
}

// parseCalendar reads calendar.txt and returns one Service per row (with
// Exceptions left empty; calendar_dates.txt rows are merged in separately).
func parseCalendar(data io.Reader) ([]model.Service, error) {
	rows := []*calendarCSV{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return nil, &SchemaError{File: "calendar.txt", Reason: errors.Wrap(err, "unmarshaling").Error()}
	}

	seen := map[string]bool{}
	services := make([]model.Service, 0, len(rows))

	for _, c := range rows {
		if c.ServiceID == "" {
			return nil, &SchemaError{File: "calendar.txt", Field: "service_id", Reason: "missing"}
		}
		if seen[c.ServiceID] {
			return nil, &SchemaError{File: "calendar.txt", Field: "service_id", Reason: "duplicate: " + c.ServiceID}
		}
		seen[c.ServiceID] = true

		if _, err := model.ParseServiceDate(c.StartDate); err != nil {
			return nil, &SchemaError{File: "calendar.txt", Field: "start_date", Reason: err.Error()}
		}
		if _, err := model.ParseServiceDate(c.EndDate); err != nil {
			return nil, &SchemaError{File: "calendar.txt", Field: "end_date", Reason: err.Error()}
		}

		var weekday [7]bool
		flags := []int8{c.Sunday, c.Monday, c.Tuesday, c.Wednesday, c.Thursday, c.Friday, c.Saturday}
		fields := []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}
		for i, v := range flags {
			b, err := parseDayFlag(v)
			if err != nil {
				return nil, &SchemaError{File: "calendar.txt", Field: fields[i], Reason: errors.Wrapf(err, "service '%s'", c.ServiceID).Error()}
			}
			weekday[i] = b
		}

		services = append(services, model.Service{
			ID:        c.ServiceID,
			StartDate: c.StartDate,
			EndDate:   c.EndDate,
			Weekday:   weekday,
		})
	}

	return services, nil
}

func writeServices(writer storage.FeedWriter, services []model.Service) error {
	for _, s := range services {
		if err := writer.WriteService(s); err != nil {
			return errors.Wrapf(err, "writing service '%s'", s.ID)
		}
	}
	return nil
}
