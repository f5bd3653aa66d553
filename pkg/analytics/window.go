package analytics

import "time"

// Preset is a named shorthand for a date range.
type Preset string

const (
	PresetToday     Preset = "today"
	PresetYesterday Preset = "yesterday"
	PresetThisWeek  Preset = "this-week"
	PresetThisMonth Preset = "this-month"
	PresetAllTime   Preset = "all-time"
	PresetCustom    Preset = "custom"
)

// Window bounds the pins fed to the aggregator. Zero Start and End mean
// all-time (no filtering). Cumulative switches the temporal distribution
// from hourly snapshots to running daily totals.
type Window struct {
	Start      time.Time
	End        time.Time
	Preset     Preset
	Cumulative bool
}

// allTimeStart mirrors the dashboard's fixed lower bound for "all-time".
var allTimeStart = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.Local)

// Resolve turns a preset into a concrete window. Unknown presets resolve
// to all-time. Weeks start on Sunday.
func Resolve(preset Preset, now time.Time) Window {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch preset {
	case PresetToday:
		return Window{Start: today, End: endOfDay(today), Preset: preset}
	case PresetYesterday:
		yesterday := today.AddDate(0, 0, -1)
		return Window{Start: yesterday, End: endOfDay(yesterday), Preset: preset}
	case PresetThisWeek:
		weekStart := today.AddDate(0, 0, -int(today.Weekday()))
		return Window{Start: weekStart, End: now, Preset: preset}
	case PresetThisMonth:
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Window{Start: monthStart, End: now, Preset: preset}
	default:
		return Window{Start: allTimeStart, End: now, Preset: PresetAllTime}
	}
}

// Custom builds a window from explicit bounds; the end date is extended to
// the last instant of its day.
func Custom(start, end time.Time, cumulative bool) Window {
	return Window{
		Start:      start,
		End:        endOfDay(time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())),
		Preset:     PresetCustom,
		Cumulative: cumulative,
	}
}

func endOfDay(dayStart time.Time) time.Time {
	return dayStart.AddDate(0, 0, 1).Add(-time.Millisecond)
}

// spansMultipleDays reports whether the window covers more than one local
// calendar day. Unbounded windows count as multi-day.
func (w Window) spansMultipleDays() bool {
	if w.Start.IsZero() || w.End.IsZero() {
		return true
	}
	s, e := w.Start.Local(), w.End.Local()
	return s.Year() != e.Year() || s.YearDay() != e.YearDay()
}

func (w Window) contains(t time.Time) bool {
	if !w.Start.IsZero() && t.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && t.After(w.End) {
		return false
	}
	return true
}
