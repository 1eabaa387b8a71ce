package services

import (
	"fmt"
	"math"
	"time"

	"shopfloor/internal/core/domain/model/part"
	"shopfloor/internal/core/domain/model/tracking"
)

// DefaultMetricsWindowDays is the look-back used when a caller gives no window.
const DefaultMetricsWindowDays = 365

// Window is an inclusive time range over task end times.
type Window struct {
	From time.Time
	To   time.Time
}

// LastDays returns the window of the given number of days ending at now.
func LastDays(now time.Time, days int) Window {
	if days <= 0 {
		days = DefaultMetricsWindowDays
	}
	return Window{From: now.AddDate(0, 0, -days), To: now}
}

// Contains reports whether t lies within the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

// PeriodCounts counts closed tasks relative to the end of the window.
type PeriodCounts struct {
	Day   int
	Month int
	Year  int
}

// OperatorMetrics summarizes the closed tasks of one operator.
type OperatorMetrics struct {
	OperatorID             int64
	Window                 Window
	TotalTasks             int
	AverageDurationMinutes float64
	AverageDurationByState map[part.State]float64
	CountsByInitialState   map[part.State]int
	CountsByPeriod         PeriodCounts
}

// FormattedAverage renders the overall average as "D days, H hours, M minutes".
func (m OperatorMetrics) FormattedAverage() string {
	return FormatMinutes(m.AverageDurationMinutes)
}

// FormatMinutes renders a duration in minutes as "D days, H hours, M minutes".
func FormatMinutes(minutes float64) string {
	total := int64(math.Round(minutes))
	if total < 0 {
		total = 0
	}
	days := total / (24 * 60)
	hours := total % (24 * 60) / 60
	mins := total % 60
	return fmt.Sprintf("%d days, %d hours, %d minutes", days, hours, mins)
}

// MetricsAggregator computes operator throughput from task trackings.
type MetricsAggregator struct{}

// NewMetricsAggregator creates a new MetricsAggregator instance.
func NewMetricsAggregator() MetricsAggregator {
	return MetricsAggregator{}
}

// Aggregate summarizes the closed trackings of operatorID whose end time lies in
// window. Open trackings and trackings of other operators are skipped, so callers
// may pass an unfiltered slice.
func (MetricsAggregator) Aggregate(operatorID int64, window Window, trackings []*tracking.TaskTracking) OperatorMetrics {
	m := OperatorMetrics{
		OperatorID:             operatorID,
		Window:                 window,
		AverageDurationByState: make(map[part.State]float64),
		CountsByInitialState:   make(map[part.State]int),
	}

	var (
		totalMinutes int64
		byState      = make(map[part.State]int64)
		stateCounts  = make(map[part.State]int)
		dayStart     = window.To.Add(-24 * time.Hour)
	)

	for _, t := range trackings {
		if t == nil || t.IsActive() || t.OperatorID() != operatorID {
			continue
		}
		end := t.EndTime()
		if end == nil || !window.Contains(*end) {
			continue
		}

		var minutes int64
		if d := t.DurationMinutes(); d != nil {
			minutes = *d
		}

		m.TotalTasks++
		totalMinutes += minutes
		byState[t.StateAtCompletion()] += minutes
		stateCounts[t.StateAtCompletion()]++
		m.CountsByInitialState[t.StateAtStart()]++

		endAt := end.In(window.To.Location())
		if endAt.After(dayStart) {
			m.CountsByPeriod.Day++
		}
		if endAt.Year() == window.To.Year() {
			m.CountsByPeriod.Year++
			if endAt.Month() == window.To.Month() {
				m.CountsByPeriod.Month++
			}
		}
	}

	if m.TotalTasks > 0 {
		m.AverageDurationMinutes = float64(totalMinutes) / float64(m.TotalTasks)
	}
	for state, sum := range byState {
		m.AverageDurationByState[state] = float64(sum) / float64(stateCounts[state])
	}

	return m
}
