package course

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrMidnightHour is returned for 24-hour values with hour 0. There is no
	// agreed 12-hour rendering for them yet, so the value is kept as stored.
	ErrMidnightHour = errors.New("course: hour 0 has no 12-hour form")
	// ErrUnrecognisedTime is returned when a stored time is neither 12-hour nor H:MM 24-hour.
	ErrUnrecognisedTime = errors.New("course: unrecognised time")
)

var (
	twelveHourPattern = regexp.MustCompile(`(?i)^(0?[1-9]|1[0-2]):[0-5][0-9]\s?(AM|PM)$`)
	twentyFourPattern = regexp.MustCompile(`^([0-9]{1,2}):([0-5][0-9])$`)
)

// ValidTime reports whether s is a 12-hour clock time such as "8:00 AM" or "12:30pm".
func ValidTime(s string) bool {
	return twelveHourPattern.MatchString(s)
}

// To12Hour converts a stored 24-hour time to the 12-hour form the editor
// shows. Values already carrying AM or PM, and empty values, are returned
// unchanged. On error the input is returned unchanged alongside it.
func To12Hour(s string) (string, error) {
	if s == "" || strings.Contains(s, "AM") || strings.Contains(s, "PM") {
		return s, nil
	}

	m := twentyFourPattern.FindStringSubmatch(s)
	if m == nil {
		return s, fmt.Errorf("%w: %q", ErrUnrecognisedTime, s)
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil || hour > 23 {
		return s, fmt.Errorf("%w: %q", ErrUnrecognisedTime, s)
	}
	minutes := m[2]

	switch {
	case hour == 0:
		return s, fmt.Errorf("%w: %q", ErrMidnightHour, s)
	case hour < 12:
		return fmt.Sprintf("%d:%s AM", hour, minutes), nil
	case hour == 12:
		return "12:" + minutes + " PM", nil
	default:
		return fmt.Sprintf("%d:%s PM", hour-12, minutes), nil
	}
}
