package pkg

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

// DateLayout is the calendar-day format used for workout dates on the wire.
const DateLayout = "2006-01-02"

var ErrInvalidPathParam = errors.New("invalid path param")

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date [%s]: %w", s, err)
	}
	return d, nil
}

// ParseDateOr parses s or returns def when s is empty.
func ParseDateOr(s string, def time.Time) (time.Time, error) {
	if s == "" {
		return def, nil
	}
	return ParseDate(s)
}

// IntPathParam reads a positive integer mux path variable.
func IntPathParam(r *http.Request, name string) (int, error) {
	raw := mux.Vars(r)[name]
	if raw == "" {
		return 0, fmt.Errorf("%w: %s empty", ErrInvalidPathParam, name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s=%s", ErrInvalidPathParam, name, raw)
	}
	return v, nil
}

func Ptr[T any](v T) *T {
	return &v
}
