// Package clock implements minute-precision arithmetic on zero-padded "HH:MM"
// wall-clock strings. Values carry no date or timezone.
package clock

import (
	"fmt"
	"strings"
	"time"
)

const MinutesPerDay = 24 * 60

// Time is a wall-clock minute in [00:00, 23:59].
type Time struct {
	min int
}

// New builds a Time from hour and minute, rejecting out-of-range fields.
func New(hour, minute int) (Time, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Time{}, fmt.Errorf("clock: %d:%d out of range", hour, minute)
	}
	return Time{min: hour*60 + minute}, nil
}

// Parse reads a strict two-digit "HH:MM" value.
func Parse(s string) (Time, error) {
	if len(s) != 5 || s[2] != ':' || !isDigit(s[0]) || !isDigit(s[1]) || !isDigit(s[3]) || !isDigit(s[4]) {
		return Time{}, fmt.Errorf("clock: %q is not HH:MM", s)
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	return New(h, m)
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Time {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Valid reports whether s is a well-formed "HH:MM" value.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// FromTime truncates a time.Time to its wall-clock minute in t's location.
func FromTime(t time.Time) Time {
	return Time{min: t.Hour()*60 + t.Minute()}
}

func (t Time) Hour() int    { return t.min / 60 }
func (t Time) Minute() int  { return t.min % 60 }
func (t Time) Minutes() int { return t.min }

// String renders the zero-padded form. Lexical order of these strings equals
// numeric order, which the plan sort relies on.
func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Add offsets t by minutes, wrapping within the day. wrapped is true when the
// result crossed midnight in either direction.
func (t Time) Add(minutes int) (result Time, wrapped bool) {
	total := t.min + minutes
	wrapped = total >= MinutesPerDay || total < 0
	total %= MinutesPerDay
	if total < 0 {
		total += MinutesPerDay
	}
	return Time{min: total}, wrapped
}

// Sub returns t - u in minutes.
func (t Time) Sub(u Time) int { return t.min - u.min }

func (t Time) Before(u Time) bool { return t.min < u.min }
func (t Time) After(u Time) bool  { return t.min > u.min }

// AddMinutes offsets an "HH:MM" string, wrapping past midnight.
func AddMinutes(hhmm string, minutes int) (string, error) {
	out, _, err := AddMinutesWrapped(hhmm, minutes)
	return out, err
}

// AddMinutesWrapped is AddMinutes that also reports a midnight wrap.
func AddMinutesWrapped(hhmm string, minutes int) (string, bool, error) {
	t, err := Parse(hhmm)
	if err != nil {
		return "", false, err
	}
	out, wrapped := t.Add(minutes)
	return out.String(), wrapped, nil
}

// Diff returns a - b in minutes, comparing hour:minute only.
func Diff(a, b string) (int, error) {
	ta, err := Parse(a)
	if err != nil {
		return 0, err
	}
	tb, err := Parse(b)
	if err != nil {
		return 0, err
	}
	return ta.Sub(tb), nil
}

// Compare orders two zero-padded "HH:MM" strings lexically.
func Compare(a, b string) int {
	return strings.Compare(a, b)
}

var (
	lateCutoff = Time{min: 19 * 60}
	lateEnd    = Time{min: 23 * 60}
	dayEnd     = Time{min: 19*60 + 30}
)

// EndOfDay returns the close of the planning window for a day starting at now.
// Starts at or after 19:00 get a late window ending 23:00.
func EndOfDay(now Time) Time {
	if now.Hour() >= lateCutoff.Hour() {
		return lateEnd
	}
	return dayEnd
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
