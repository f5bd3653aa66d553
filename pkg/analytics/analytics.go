// Package analytics computes the admin dashboard statistics over a pin
// collection constrained to a date window. Pure and deterministic; empty
// input yields all-zero results.
package analytics

import (
	"sort"
	"time"

	"github.com/zionren/corkboard/pkg/models"
)

// DayCount is one point of the cumulative daily series.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type Report struct {
	TotalPosts  int                     `json:"totalPosts"`
	UniqueUsers int                     `json:"uniqueUsers"`
	RecentPosts int                     `json:"recentPosts"`
	MainCounts  map[models.Category]int `json:"mainCounts"`
	HourlyData  [24]int                 `json:"hourlyData"`
	// DailyData is the running cumulative total per day, ascending by date.
	// Only populated in cumulative mode over a multi-day window; otherwise
	// consumers fall back to HourlyData.
	DailyData []DayCount `json:"dailyData,omitempty"`
}

// Aggregate windows the pins to [win.Start, win.End] inclusive and computes
// the dashboard counts. The last-hour count is only computed for the "today"
// preset; any other window reports 0 regardless of post recency, matching
// the dashboard it replaces.
func Aggregate(pins []models.Pin, win Window, now time.Time) Report {
	report := Report{MainCounts: make(map[models.Category]int, len(models.Categories))}
	for _, c := range models.Categories {
		report.MainCounts[c] = 0
	}

	daily := make(map[string]int)
	oneHourAgo := now.Add(-time.Hour)

	for _, p := range pins {
		if !win.contains(p.CreatedAt) {
			continue
		}
		report.TotalPosts++

		// Null/absent categories land in the council bucket; foreign codes
		// are dropped from the fixed totals.
		cat := p.Category
		if cat == "" {
			cat = models.CategoryCouncil
		}
		if _, ok := report.MainCounts[cat]; ok {
			report.MainCounts[cat]++
		}

		local := p.CreatedAt.Local()
		report.HourlyData[local.Hour()]++
		daily[local.Format("2006-01-02")]++

		if win.Preset == PresetToday && !p.CreatedAt.Before(oneHourAgo) {
			report.RecentPosts++
		}
	}

	report.UniqueUsers = countUniqueNicknames(pins, win)

	if win.Cumulative && win.spansMultipleDays() {
		report.DailyData = cumulativeSeries(daily)
	}
	return report
}

// countUniqueNicknames counts distinct display nicknames, not author IDs;
// two authors sharing a nickname collapse into one.
func countUniqueNicknames(pins []models.Pin, win Window) int {
	seen := make(map[string]struct{})
	for _, p := range pins {
		if win.contains(p.CreatedAt) {
			seen[p.Nickname] = struct{}{}
		}
	}
	return len(seen)
}

func cumulativeSeries(daily map[string]int) []DayCount {
	if len(daily) == 0 {
		return nil
	}
	dates := make([]string, 0, len(daily))
	for d := range daily {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	series := make([]DayCount, 0, len(dates))
	running := 0
	for _, d := range dates {
		running += daily[d]
		series = append(series, DayCount{Date: d, Count: running})
	}
	return series
}
