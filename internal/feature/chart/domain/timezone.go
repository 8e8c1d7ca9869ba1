package domain

import (
	"fmt"
	"strings"
	"time"

	"natal_backend/internal/feature/chart/domain/entity"
)

// Supported birth year window. The simplified ephemeris is anchored at
// J2000.0 and degrades beyond a few centuries, so inputs outside this
// range are rejected instead of silently producing junk.
const (
	minChartYear = 1800
	maxChartYear = 2200
)

// ResolveInstant validates the calendar fields of in and maps the local
// wall-clock time to a single UTC instant.
//
// Wall times repeated by a backward UTC offset transition resolve to the
// earliest matching instant. Wall times skipped by a forward transition
// keep the offset in force before the transition.
func ResolveInstant(in entity.BirthInput) (time.Time, error) {
	if err := validateCalendar(in); err != nil {
		return time.Time{}, err
	}
	loc, err := resolveZone(in.Timezone)
	if err != nil {
		return time.Time{}, err
	}
	return localToUTC(in, loc), nil
}

func validateCalendar(in entity.BirthInput) error {
	if in.Year < minChartYear || in.Year > maxChartYear {
		return fmt.Errorf("%w: year %d outside supported range %d..%d",
			ErrInvalidTimeInput, in.Year, minChartYear, maxChartYear)
	}
	if in.Month < 1 || in.Month > 12 {
		return fmt.Errorf("%w: month %d out of range", ErrInvalidTimeInput, in.Month)
	}
	if max := daysInMonth(in.Year, in.Month); in.Day < 1 || in.Day > max {
		return fmt.Errorf("%w: day %d out of range for %04d-%02d",
			ErrInvalidTimeInput, in.Day, in.Year, in.Month)
	}
	if in.Hour < 0 || in.Hour > 23 {
		return fmt.Errorf("%w: hour %d out of range", ErrInvalidTimeInput, in.Hour)
	}
	if in.Minute < 0 || in.Minute > 59 {
		return fmt.Errorf("%w: minute %d out of range", ErrInvalidTimeInput, in.Minute)
	}
	return nil
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	default:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	}
}

// resolveZone accepts an IANA zone name, "UTC"/"Z"/empty, or a fixed
// offset of the form "+HH:MM" / "-HH:MM".
func resolveZone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	switch name {
	case "", "UTC", "Z":
		return time.UTC, nil
	}
	if name[0] == '+' || name[0] == '-' {
		sec, err := parseFixedOffset(name)
		if err != nil {
			return nil, err
		}
		return time.FixedZone(name, sec), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidTimeInput, name)
	}
	return loc, nil
}

func parseFixedOffset(s string) (int, error) {
	var hh, mm int
	var sign byte
	if len(s) != len("+HH:MM") {
		return 0, fmt.Errorf("%w: malformed offset %q", ErrInvalidTimeInput, s)
	}
	if _, err := fmt.Sscanf(s, "%c%02d:%02d", &sign, &hh, &mm); err != nil {
		return 0, fmt.Errorf("%w: malformed offset %q", ErrInvalidTimeInput, s)
	}
	if hh > 14 || mm > 59 {
		return 0, fmt.Errorf("%w: offset %q out of range", ErrInvalidTimeInput, s)
	}
	sec := hh*3600 + mm*60
	if sign == '-' {
		sec = -sec
	}
	return sec, nil
}

// localToUTC maps validated wall-clock fields in loc to a UTC instant.
// Candidate instants are probed from the zone offsets around the wall
// time instead of relying on time.Date's unspecified choice for
// ambiguous or skipped times.
func localToUTC(in entity.BirthInput, loc *time.Location) time.Time {
	wall := time.Date(in.Year, time.Month(in.Month), in.Day, in.Hour, in.Minute, 0, 0, time.UTC)

	var (
		best  time.Time
		found bool
	)
	seen := make(map[int]struct{}, 3)
	for _, probe := range []time.Time{wall.Add(-24 * time.Hour), wall, wall.Add(24 * time.Hour)} {
		_, off := probe.In(loc).Zone()
		if _, dup := seen[off]; dup {
			continue
		}
		seen[off] = struct{}{}
		cand := wall.Add(-time.Duration(off) * time.Second)
		if matchesWall(cand.In(loc), in) && (!found || cand.Before(best)) {
			best, found = cand, true
		}
	}
	if found {
		return best
	}

	// Skipped wall time: keep the offset in force before the gap.
	_, off := wall.Add(-24 * time.Hour).In(loc).Zone()
	return wall.Add(-time.Duration(off) * time.Second)
}

func matchesWall(t time.Time, in entity.BirthInput) bool {
	return t.Year() == in.Year &&
		int(t.Month()) == in.Month &&
		t.Day() == in.Day &&
		t.Hour() == in.Hour &&
		t.Minute() == in.Minute
}
