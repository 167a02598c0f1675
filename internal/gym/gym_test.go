package gym

import (
	"testing"
	"time"

	"github.com/jasperquin/heartlog/internal/model"
)

func session(day int, status string) model.GymSession {
	return model.GymSession{
		Date:   time.Date(2025, 5, day, 0, 0, 0, 0, time.UTC),
		Status: status,
	}
}

func TestSummarizeCounts(t *testing.T) {
	sessions := []model.GymSession{
		session(1, model.GymCompleted),
		session(2, model.GymMissed),
		session(3, model.GymCompleted),
		session(4, model.GymRest),
		session(5, model.GymCompleted),
	}

	s := Summarize(sessions)
	if s.TotalSessions != 3 {
		t.Errorf("total = %d, want 3", s.TotalSessions)
	}
	if s.MissedDays != 1 {
		t.Errorf("missed = %d, want 1", s.MissedDays)
	}
}

func TestSummarizeStreak(t *testing.T) {
	cases := []struct {
		name     string
		sessions []model.GymSession
		want     int
	}{
		{"empty", nil, 0},
		{"all completed", []model.GymSession{
			session(1, model.GymCompleted),
			session(2, model.GymCompleted),
		}, 2},
		{"rest does not break", []model.GymSession{
			session(1, model.GymCompleted),
			session(2, model.GymRest),
			session(3, model.GymCompleted),
		}, 2},
		{"miss breaks", []model.GymSession{
			session(1, model.GymCompleted),
			session(2, model.GymMissed),
			session(3, model.GymCompleted),
		}, 1},
		{"ends on miss", []model.GymSession{
			session(1, model.GymCompleted),
			session(2, model.GymMissed),
		}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Summarize(tc.sessions)
			if s.CurrentStreak != tc.want {
				t.Errorf("streak = %d, want %d", s.CurrentStreak, tc.want)
			}
		})
	}
}

func TestSummarizeRecentMissesWindow(t *testing.T) {
	var sessions []model.GymSession
	// Two old misses fall outside the seven-entry window.
	sessions = append(sessions, session(1, model.GymMissed), session(2, model.GymMissed))
	for d := 3; d <= 9; d++ {
		status := model.GymCompleted
		if d == 5 {
			status = model.GymMissed
		}
		sessions = append(sessions, session(d, status))
	}

	s := Summarize(sessions)
	if s.RecentMisses != 1 {
		t.Errorf("recent misses = %d, want 1", s.RecentMisses)
	}
}

func TestMotivation(t *testing.T) {
	if _, _, ok := Motivation(0); ok {
		t.Error("expected no message for zero misses")
	}

	level, _, ok := Motivation(1)
	if !ok || level != LevelWarning {
		t.Errorf("one miss: level = %q, ok = %v, want warning", level, ok)
	}
	level, _, ok = Motivation(2)
	if !ok || level != LevelWarning {
		t.Errorf("two misses: level = %q, ok = %v, want warning", level, ok)
	}
	level, _, ok = Motivation(3)
	if !ok || level != LevelDanger {
		t.Errorf("three misses: level = %q, ok = %v, want danger", level, ok)
	}
}

func TestIsPhotoDay(t *testing.T) {
	if !IsPhotoDay(4) {
		t.Error("fifth session should be a photo day")
	}
	if IsPhotoDay(5) {
		t.Error("sixth session should not be a photo day")
	}
	if !IsPhotoDay(9) {
		t.Error("tenth session should be a photo day")
	}
}
