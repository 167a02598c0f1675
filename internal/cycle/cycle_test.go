package cycle

import (
	"strings"
	"testing"
	"time"

	"github.com/jasperquin/heartlog/internal/model"
)

func date(s string) time.Time {
	t, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func closedPeriod(start, end string) model.Period {
	e := date(end)
	return model.Period{StartDate: date(start), EndDate: &e}
}

func TestSummarizeRegularCycles(t *testing.T) {
	periods := []model.Period{
		closedPeriod("2025-01-01", "2025-01-05"),
		closedPeriod("2025-01-29", "2025-02-02"),
		closedPeriod("2025-02-27", "2025-03-03"),
	}

	s := Summarize(periods)

	if s.AverageCycleLength != 28.5 {
		t.Errorf("average cycle length = %v, want 28.5", s.AverageCycleLength)
	}
	if s.CycleRegularity != Regular {
		t.Errorf("regularity = %q, want %q", s.CycleRegularity, Regular)
	}
	if s.AveragePeriodDays != 5 {
		t.Errorf("average period days = %v, want 5", s.AveragePeriodDays)
	}
	if s.LastPeriodDate == nil || !s.LastPeriodDate.Equal(date("2025-02-27")) {
		t.Errorf("last period date = %v, want 2025-02-27", s.LastPeriodDate)
	}
	if len(s.RecentCycles) != 2 || s.RecentCycles[0] != 28 || s.RecentCycles[1] != 29 {
		t.Errorf("recent cycles = %v, want [28 29]", s.RecentCycles)
	}
}

func TestSummarizeUnsortedInput(t *testing.T) {
	periods := []model.Period{
		closedPeriod("2025-02-27", "2025-03-03"),
		closedPeriod("2025-01-01", "2025-01-05"),
		closedPeriod("2025-01-29", "2025-02-02"),
	}

	s := Summarize(periods)
	if s.AverageCycleLength != 28.5 {
		t.Errorf("average cycle length = %v, want 28.5", s.AverageCycleLength)
	}
}

func TestSummarizeInsufficientData(t *testing.T) {
	cases := []struct {
		name    string
		periods []model.Period
	}{
		{"empty", nil},
		{"single", []model.Period{closedPeriod("2025-01-01", "2025-01-05")}},
		{"two", []model.Period{
			closedPeriod("2025-01-01", "2025-01-05"),
			closedPeriod("2025-01-29", "2025-02-02"),
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Summarize(tc.periods)
			if s.CycleRegularity != InsufficientData {
				t.Errorf("regularity = %q, want %q", s.CycleRegularity, InsufficientData)
			}
		})
	}
}

func TestSummarizeIrregularCycles(t *testing.T) {
	periods := []model.Period{
		closedPeriod("2025-01-01", "2025-01-05"),
		closedPeriod("2025-01-21", "2025-01-25"),
		closedPeriod("2025-03-05", "2025-03-09"),
		closedPeriod("2025-03-25", "2025-03-29"),
	}

	// Cycle lengths 20, 43, 20: std dev well over 7.
	s := Summarize(periods)
	if s.CycleRegularity != Irregular {
		t.Errorf("regularity = %q, want %q", s.CycleRegularity, Irregular)
	}
}

func TestSummarizeOngoingPeriodExcludedFromDuration(t *testing.T) {
	periods := []model.Period{
		closedPeriod("2025-01-01", "2025-01-05"),
		{StartDate: date("2025-01-29")},
	}

	s := Summarize(periods)
	if s.AveragePeriodDays != 5 {
		t.Errorf("average period days = %v, want 5 (ongoing excluded)", s.AveragePeriodDays)
	}
	if s.LastPeriodDate == nil || !s.LastPeriodDate.Equal(date("2025-01-29")) {
		t.Errorf("last period date = %v, want 2025-01-29", s.LastPeriodDate)
	}
}

func TestSummarizeRecentCyclesCapped(t *testing.T) {
	var periods []model.Period
	start := date("2024-01-01")
	for i := 0; i < 10; i++ {
		periods = append(periods, model.Period{StartDate: start.AddDate(0, 0, i*28)})
	}

	s := Summarize(periods)
	if len(s.RecentCycles) != recentSampleLimit {
		t.Errorf("recent cycles length = %d, want %d", len(s.RecentCycles), recentSampleLimit)
	}
}

func TestPredictNext(t *testing.T) {
	last := date("2025-03-01")
	s := Summary{
		AverageCycleLength: 28,
		LastPeriodDate:     &last,
		RecentCycles:       []int{28, 29, 27},
	}

	p, ok := PredictNext(s)
	if !ok {
		t.Fatal("expected a prediction")
	}
	if !p.MinDate.Equal(date("2025-03-26")) {
		t.Errorf("min date = %v, want 2025-03-26", p.MinDate)
	}
	if !p.MaxDate.Equal(date("2025-04-01")) {
		t.Errorf("max date = %v, want 2025-04-01", p.MaxDate)
	}
	if p.Confidence != ConfidenceHigh {
		t.Errorf("confidence = %q, want %q", p.Confidence, ConfidenceHigh)
	}
}

func TestPredictNextConfidence(t *testing.T) {
	last := date("2025-03-01")
	cases := []struct {
		name   string
		recent []int
		avg    float64
		want   string
	}{
		{"too few samples", []int{28, 29}, 28.5, ConfidenceLow},
		{"tight", []int{28, 29, 28}, 28.33, ConfidenceHigh},
		{"loose", []int{22, 28, 35}, 28.33, ConfidenceMedium},
		{"wild", []int{15, 28, 45}, 29.33, ConfidenceLow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := PredictNext(Summary{
				AverageCycleLength: tc.avg,
				LastPeriodDate:     &last,
				RecentCycles:       tc.recent,
			})
			if !ok {
				t.Fatal("expected a prediction")
			}
			if p.Confidence != tc.want {
				t.Errorf("confidence = %q, want %q", p.Confidence, tc.want)
			}
		})
	}
}

func TestPredictNextMissingInputs(t *testing.T) {
	last := date("2025-03-01")

	if _, ok := PredictNext(Summary{AverageCycleLength: 28}); ok {
		t.Error("expected no prediction without a last period date")
	}
	if _, ok := PredictNext(Summary{LastPeriodDate: &last}); ok {
		t.Error("expected no prediction without an average cycle length")
	}
}

func TestPhaseBands(t *testing.T) {
	today := date("2025-06-15")
	cases := []struct {
		name      string
		daysSince int
		want      string
	}{
		{"day zero", 0, "Menstrual"},
		{"day three", 3, "Menstrual"},
		{"band edge", 5, "Menstrual"},
		{"day ten", 10, "Follicular"},
		{"half cycle", 14, "Follicular"},
		{"ovulation", 16, "Ovulation"},
		{"sixty percent", 16, "Ovulation"},
		{"luteal", 17, "Luteal"},
		{"late luteal", 40, "Luteal"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			last := today.AddDate(0, 0, -tc.daysSince)
			got := Phase(&last, 28, today)
			if got.Name != tc.want {
				t.Errorf("phase at day %d = %q, want %q", tc.daysSince, got.Name, tc.want)
			}
		})
	}
}

func TestPhaseBandsExhaustive(t *testing.T) {
	// Every non-negative daysSince must land in exactly one band.
	today := date("2025-06-15")
	for days := 0; days <= 90; days++ {
		last := today.AddDate(0, 0, -days)
		got := Phase(&last, 28, today)
		switch got.Name {
		case "Menstrual", "Follicular", "Ovulation", "Luteal":
		default:
			t.Fatalf("day %d: unexpected phase %q", days, got.Name)
		}
	}
}

func TestPhaseUnknownWithoutHistory(t *testing.T) {
	got := Phase(nil, 28, date("2025-06-15"))
	if got.Name != "Unknown" {
		t.Errorf("phase = %q, want Unknown", got.Name)
	}
}

func TestPhaseDefaultsCycleLength(t *testing.T) {
	today := date("2025-06-15")
	last := today.AddDate(0, 0, -10)
	// Average unknown: the 28-day default puts day 10 in follicular.
	got := Phase(&last, 0, today)
	if got.Name != "Follicular" {
		t.Errorf("phase = %q, want Follicular", got.Name)
	}
}

func TestMonthInsight(t *testing.T) {
	periods := []model.Period{
		closedPeriod("2025-01-01", "2025-01-05"),
		closedPeriod("2025-01-29", "2025-02-02"),
		closedPeriod("2025-02-27", "2025-03-03"),
	}

	got := MonthInsight(periods, 2025, 1, 28.5)
	if !strings.Contains(got, "typical") || !strings.Contains(got, "28 days") {
		t.Errorf("insight = %q, want a typical 28-day cycle", got)
	}
	if !strings.Contains(got, "lasted 5 days") {
		t.Errorf("insight = %q, want 5-day duration", got)
	}
}

func TestMonthInsightLongerCycle(t *testing.T) {
	periods := []model.Period{
		closedPeriod("2025-01-01", "2025-01-05"),
		closedPeriod("2025-02-05", "2025-02-09"),
	}

	got := MonthInsight(periods, 2025, 1, 28)
	if !strings.Contains(got, "7 days longer") {
		t.Errorf("insight = %q, want 7 days longer", got)
	}
}

func TestMonthInsightOngoing(t *testing.T) {
	periods := []model.Period{
		{StartDate: date("2025-03-02")},
	}

	got := MonthInsight(periods, 2025, 3, 0)
	if !strings.Contains(got, "ongoing") {
		t.Errorf("insight = %q, want ongoing", got)
	}
}

func TestMonthInsightNoData(t *testing.T) {
	got := MonthInsight(nil, 2025, 4, 28)
	if got != "No period data for this month yet." {
		t.Errorf("insight = %q, want the no-data message", got)
	}
}
