package model

import "time"

// OperatesOn reports whether this service runs on the given date: it
// operates iff the date falls within [StartDate, EndDate] and the
// weekday flag for d's weekday is set, UNLESS a ServiceException for
// (s, d) exists, in which case the exception wins: Added forces operation,
// Removed forces non-operation.
func (s *Service) OperatesOn(date time.Time) bool {
	d := date.Format("20060102")

	for _, ex := range s.Exceptions {
		if ex.Date != d {
			continue
		}
		switch ex.Type {
		case ExceptionAdded:
			return true
		case ExceptionRemoved:
			return false
		}
	}

	if d < s.StartDate || d > s.EndDate {
		return false
	}

	return s.Weekday[date.Weekday()]
}
