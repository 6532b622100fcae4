package model

import (
	"strconv"
	"strings"
	"time"
)

// DateStyle selects how much of a date a formatter renders
type DateStyle int

const (
	DateShort  DateStyle = iota // 12/16/1775
	DateMedium                  // Dec 16, 1775
	DateLong                    // December 16, 1775
	DateISO                     // 1775-12-16
)

// DateFormatter renders calendar dates for display.
// Lifespan derivation takes one as a parameter so the rendering engine can be swapped.
type DateFormatter interface {
	Format(t time.Time, style DateStyle) string
}

// YearToken in a layout is replaced by the unpadded year (800, not 0800).
// The time layout "2006" always renders four digits.
const YearToken = "{year}"

// LayoutFormatter maps each style to a time.Format layout
type LayoutFormatter map[DateStyle]string

// DefaultDateFormatter renders en-US dates
var DefaultDateFormatter DateFormatter = LayoutFormatter{
	DateShort:  "1/2/" + YearToken,
	DateMedium: "Jan 2, " + YearToken,
	DateLong:   "January 2, " + YearToken,
	DateISO:    time.DateOnly,
}

// Format renders t in its own location so a stored calendar date never shifts a day.
// Unknown styles fall back to ISO.
func (l LayoutFormatter) Format(t time.Time, style DateStyle) string {
	layout, ok := l[style]
	if !ok {
		layout = time.DateOnly
	}
	return strings.ReplaceAll(t.Format(layout), YearToken, strconv.Itoa(t.Year()))
}

// ParseDate parses a yyyy-MM-dd calendar date as midnight UTC
func ParseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}
