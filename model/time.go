package model

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseTimeOfDay parses a GTFS HH:MM:SS time-of-day string into seconds
// since midnight. The hour field is unbounded: values of 24 and above are
// legal and denote a time on the service day after midnight (overnight
// trips).
func ParseTimeOfDay(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, errors.Errorf("found %d parts in '%s', want 3", len(parts), s)
	}

	hms := [3]int{}
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return 0, errors.Wrapf(err, "non-integer component in '%s'", s)
		}
		hms[i] = v
	}

	if hms[0] < 0 {
		return 0, errors.Errorf("invalid hour in '%s'", s)
	}
	if hms[1] < 0 || hms[1] > 59 {
		return 0, errors.Errorf("invalid minute in '%s'", s)
	}
	if hms[2] < 0 || hms[2] > 59 {
		return 0, errors.Errorf("invalid second in '%s'", s)
	}

	return hms[0]*3600 + hms[1]*60 + hms[2], nil
}

// ParseServiceDate validates a GTFS YYYYMMDD calendar date string. It
// returns the string unchanged (lexicographic ordering on the YYYYMMDD
// form already matches calendar ordering), or an error if the string isn't
// a well-formed calendar date.
func ParseServiceDate(s string) (string, error) {
	if len(s) != 8 {
		return "", errors.Errorf("invalid date '%s': want YYYYMMDD", s)
	}
	year, err := strconv.Atoi(s[0:4])
	if err != nil {
		return "", errors.Wrapf(err, "invalid year in date '%s'", s)
	}
	month, err := strconv.Atoi(s[4:6])
	if err != nil || month < 1 || month > 12 {
		return "", errors.Errorf("invalid month in date '%s'", s)
	}
	day, err := strconv.Atoi(s[6:8])
	if err != nil || day < 1 || day > 31 {
		return "", errors.Errorf("invalid day in date '%s'", s)
	}
	if year < 1 {
		return "", errors.Errorf("invalid year in date '%s'", s)
	}
	return s, nil
}
