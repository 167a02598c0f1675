// Package gym computes attendance statistics over logged gym sessions.
package gym

import (
	"sort"

	"github.com/jasperquin/heartlog/internal/model"
)

// recentWindow is how many of the latest logged sessions count toward
// the miss streak.
const recentWindow = 7

// photoInterval is how often a progress photo is prompted, in
// completed sessions.
const photoInterval = 5

// Summary holds aggregate gym statistics. The JSON shape matches the
// /api/gym/stats/summary resource.
type Summary struct {
	TotalSessions int `json:"totalSessions"`
	MissedDays    int `json:"missedDays"`
	CurrentStreak int `json:"currentStreak"`
	RecentMisses  int `json:"recentMisses"`
}

// Summarize computes attendance statistics. TotalSessions counts
// completed workouts, CurrentStreak counts consecutive completed
// entries walking back from the latest (rest days do not break it),
// RecentMisses counts missed entries among the last seven logged.
func Summarize(sessions []model.GymSession) Summary {
	sorted := make([]model.GymSession, len(sessions))
	copy(sorted, sessions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var s Summary
	for _, sess := range sorted {
		switch sess.Status {
		case model.GymCompleted:
			s.TotalSessions++
		case model.GymMissed:
			s.MissedDays++
		}
	}

	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i].Status == model.GymRest {
			continue
		}
		if sorted[i].Status != model.GymCompleted {
			break
		}
		s.CurrentStreak++
	}

	recent := sorted
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}
	for _, sess := range recent {
		if sess.Status == model.GymMissed {
			s.RecentMisses++
		}
	}

	return s
}

// Motivation levels.
const (
	LevelWarning = "warning"
	LevelDanger  = "danger"
)

// Motivation returns a nudge based on recent misses. ok is false when
// there is nothing to nag about.
func Motivation(recentMisses int) (level, message string, ok bool) {
	switch {
	case recentMisses <= 0:
		return "", "", false
	case recentMisses == 1:
		return LevelWarning, "Don't break the momentum!", true
	case recentMisses == 2:
		return LevelWarning, "You okay? One workout and you're back!", true
	default:
		return LevelDanger, "Time to get back on track! Your future self will thank you!", true
	}
}

// IsPhotoDay reports whether the next completed session should prompt
// a progress photo (every fifth one).
func IsPhotoDay(totalSessions int) bool {
	return (totalSessions+1)%photoInterval == 0
}
