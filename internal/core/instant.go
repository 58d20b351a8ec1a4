package core

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// InstantLayout is the wire and storage format of an Instant.
const InstantLayout = "2006-01-02T15:04:05.000Z"

// Instants are limited to four-digit years so InstantLayout round-trips and
// stored dates compare correctly as text.
var (
	minInstant = time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxInstant = time.Date(9999, time.December, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC)
)

// Accepted input layouts without an explicit zone are read as UTC.
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseInstant parses a user supplied date string.
func ParseInstant(s string) (Instant, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Instant{}, ErrInvalidDate
	}
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return checkedInstant(t)
		}
	}
	return Instant{}, ErrInvalidDate
}

// instantFromValue accepts a decoded JSON value: strings are parsed, numbers
// are milliseconds since the Unix epoch.
func instantFromValue(v any) (Instant, error) {
	switch val := v.(type) {
	case string:
		return ParseInstant(val)
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) || val != math.Trunc(val) {
			return Instant{}, ErrInvalidDate
		}
		if val < float64(minInstant.UnixMilli()) || val > float64(maxInstant.UnixMilli()) {
			return Instant{}, ErrInvalidDate
		}
		return NewInstant(time.UnixMilli(int64(val))), nil
	default:
		return Instant{}, ErrInvalidDate
	}
}

func checkedInstant(t time.Time) (Instant, error) {
	i := NewInstant(t)
	if !i.InRange() {
		return Instant{}, ErrInvalidDate
	}
	return i, nil
}

// InRange reports whether i falls within years 0000 to 9999.
func (i Instant) InRange() bool {
	return !i.Before(minInstant) && !i.After(maxInstant)
}

func (i Instant) String() string {
	return i.UTC().Format(InstantLayout)
}

func (i Instant) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

func (i *Instant) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("instant must be a string: %w", err)
	}
	parsed, err := ParseInstant(s)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// Within reports whether i lies in [from, to], both ends inclusive.
func (i Instant) Within(from, to Instant) bool {
	return !i.Before(from.Time) && !i.After(to.Time)
}
