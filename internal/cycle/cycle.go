// Package cycle computes cycle statistics, next-period predictions
// and phase estimates from logged period history.
package cycle

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/jasperquin/heartlog/internal/model"
)

// Regularity classifications.
const (
	Regular          = "regular"
	SomewhatRegular  = "somewhat-regular"
	Irregular        = "irregular"
	InsufficientData = "insufficient-data"
)

// Prediction confidence levels.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// recentSampleLimit caps how many of the latest cycle lengths feed the
// variability estimate.
const recentSampleLimit = 6

// DefaultCycleLength is assumed when there is not enough history to
// compute an average.
const DefaultCycleLength = 28

// Summary holds the aggregate statistics the tracker surfaces. The
// JSON shape matches the /api/periods/stats/summary resource.
type Summary struct {
	AverageCycleLength float64    `json:"averageCycleLength"`
	CycleRegularity    string     `json:"cycleRegularity"`
	AveragePeriodDays  float64    `json:"averagePeriodDays"`
	LastPeriodDate     *time.Time `json:"lastPeriodDate,omitempty"`
	RecentCycles       []int      `json:"recentCycles,omitempty"`
}

// Summarize computes cycle statistics over the given periods. The
// input does not need to be sorted. Fewer than two periods yield an
// insufficient-data summary with no average cycle length.
func Summarize(periods []model.Period) Summary {
	sorted := make([]model.Period, len(periods))
	copy(sorted, periods)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})

	var s Summary
	if len(sorted) > 0 {
		last := model.Midnight(sorted[len(sorted)-1].StartDate)
		s.LastPeriodDate = &last
	}

	var lengths []int
	for i := 1; i < len(sorted); i++ {
		lengths = append(lengths, model.DaysBetween(sorted[i-1].StartDate, sorted[i].StartDate))
	}

	var durSum, durN int
	for _, p := range sorted {
		if d, ok := p.DurationDays(); ok {
			durSum += d
			durN++
		}
	}
	if durN > 0 {
		s.AveragePeriodDays = float64(durSum) / float64(durN)
	}

	if len(lengths) < 2 {
		s.CycleRegularity = InsufficientData
		if len(lengths) == 1 {
			s.AverageCycleLength = float64(lengths[0])
			s.RecentCycles = lengths
		}
		return s
	}

	var sum int
	for _, l := range lengths {
		sum += l
	}
	s.AverageCycleLength = float64(sum) / float64(len(lengths))

	recent := lengths
	if len(recent) > recentSampleLimit {
		recent = recent[len(recent)-recentSampleLimit:]
	}
	s.RecentCycles = recent

	sd := stdDev(recent, s.AverageCycleLength)
	switch {
	case sd <= 3:
		s.CycleRegularity = Regular
	case sd <= 7:
		s.CycleRegularity = SomewhatRegular
	default:
		s.CycleRegularity = Irregular
	}

	return s
}

// stdDev is the population standard deviation of samples around mean.
func stdDev(samples []int, mean float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sq float64
	for _, v := range samples {
		d := float64(v) - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(samples)))
}

// Prediction is the expected window for the next period start.
type Prediction struct {
	MinDate    time.Time `json:"minDate"`
	MaxDate    time.Time `json:"maxDate"`
	Confidence string    `json:"confidence"`
}

// PredictNext returns a symmetric three-day window centered on the
// last period start plus the average cycle length. ok is false when
// either input is missing. Confidence needs at least three recent
// samples to rise above low.
func PredictNext(s Summary) (Prediction, bool) {
	if s.LastPeriodDate == nil || s.AverageCycleLength <= 0 {
		return Prediction{}, false
	}

	avg := int(s.AverageCycleLength)
	center := s.LastPeriodDate.AddDate(0, 0, avg)

	confidence := ConfidenceLow
	if len(s.RecentCycles) >= 3 {
		sd := stdDev(s.RecentCycles, s.AverageCycleLength)
		switch {
		case sd <= 3:
			confidence = ConfidenceHigh
		case sd <= 7:
			confidence = ConfidenceMedium
		}
	}

	return Prediction{
		MinDate:    center.AddDate(0, 0, -3),
		MaxDate:    center.AddDate(0, 0, 3),
		Confidence: confidence,
	}, true
}

// PhaseInfo labels where in the cycle today falls.
type PhaseInfo struct {
	Name        string `json:"phase"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Phase classifies the days elapsed since the last period start into
// one of four bands, checked in order: menstrual (through day 5),
// follicular (through half the average cycle), ovulation (through 60%
// of it), luteal for everything after. With no history at all the
// label is Unknown.
func Phase(lastPeriod *time.Time, avgCycle float64, today time.Time) PhaseInfo {
	if lastPeriod == nil {
		return PhaseInfo{
			Name:        "Unknown",
			Description: "Log a period to start tracking phases.",
			Icon:        "heart",
		}
	}
	if avgCycle <= 0 {
		avgCycle = DefaultCycleLength
	}

	daysSince := model.DaysBetween(*lastPeriod, today)
	switch {
	case daysSince <= 5:
		return PhaseInfo{
			Name:        "Menstrual",
			Description: "Rest and self-care matter most right now. Take it easy.",
			Icon:        "moon",
		}
	case daysSince <= int(math.Floor(avgCycle*0.5)):
		return PhaseInfo{
			Name:        "Follicular",
			Description: "Energy levels may be rising. A good time for plans.",
			Icon:        "sun",
		}
	case daysSince <= int(math.Floor(avgCycle*0.6)):
		return PhaseInfo{
			Name:        "Ovulation",
			Description: "Peak energy time. You might feel more social.",
			Icon:        "sparkles",
		}
	default:
		return PhaseInfo{
			Name:        "Luteal",
			Description: "Be gentle with yourself. Rest is productive too.",
			Icon:        "moon",
		}
	}
}

// MonthInsight describes the first period starting in the given month
// against the average cycle length, with a two-day tolerance. month is
// 1-based.
func MonthInsight(periods []model.Period, year, month int, avgCycle float64) string {
	sorted := make([]model.Period, len(periods))
	copy(sorted, periods)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})

	idx := -1
	for i, p := range sorted {
		if p.StartDate.Year() == year && int(p.StartDate.Month()) == month {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "No period data for this month yet."
	}

	p := sorted[idx]
	periodDays := "ongoing"
	if d, ok := p.DurationDays(); ok {
		periodDays = fmt.Sprintf("%d", d)
	}

	// Cycle length is only defined when a later period exists.
	cycleLength := 0
	if idx+1 < len(sorted) {
		cycleLength = model.DaysBetween(p.StartDate, sorted[idx+1].StartDate)
	}

	if avgCycle > 0 && cycleLength > 0 {
		diff := float64(cycleLength) - avgCycle
		switch {
		case math.Abs(diff) <= 2:
			return fmt.Sprintf("Cycle length was typical (%d days). Period lasted %s days.", cycleLength, periodDays)
		case diff > 0:
			return fmt.Sprintf("Cycle was %.0f days longer than average. Period lasted %s days.", math.Abs(diff), periodDays)
		default:
			return fmt.Sprintf("Cycle was %.0f days shorter than average. Period lasted %s days.", math.Abs(diff), periodDays)
		}
	}

	return fmt.Sprintf("Period lasted %s days this month.", periodDays)
}
