package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const DateLayout = time.DateOnly

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// Date is a calendar date without time of day or zone.
type Date struct {
	year  int
	month time.Month
	day   int
}

func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}

	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

// ParseDate accepts a plain date or a full timestamp. A timestamp keeps the
// calendar date as written, its time of day and offset are discarded.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}

	if t, err := time.Parse(DateLayout, s); err == nil {
		return DateOf(t), nil
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}

	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

func (d Date) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

func (d Date) Time() time.Time {
	if d.IsZero() {
		return time.Time{}
	}

	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

func (d Date) Compare(other Date) int {
	return d.Time().Compare(other.Time())
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}

	return d.Time().Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}

		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDate, string(data))
	}

	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}
