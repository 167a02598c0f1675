// Package model defines the tracker record types shared by the local
// and remote stores.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Item is one entry on the shared list board.
type Item struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Item statuses. An item is always in exactly one of the two.
const (
	StatusTodo = "todo"
	StatusDone = "done"
)

// ValidCategories are the allowed board categories.
var ValidCategories = map[string]bool{
	"movies": true,
	"places": true,
	"things": true,
}

// ValidStatuses are the allowed item statuses.
var ValidStatuses = map[string]bool{
	StatusTodo: true,
	StatusDone: true,
}

// Period is one logged cycle interval. EndDate is nil while the
// interval is ongoing.
type Period struct {
	ID        string     `json:"id"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	Mood      string     `json:"mood,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ValidMoods are the allowed period moods. Empty is also accepted.
var ValidMoods = map[string]bool{
	"happy":     true,
	"tired":     true,
	"emotional": true,
	"energetic": true,
	"crampy":    true,
}

// Ongoing reports whether the period has no end date yet.
func (p Period) Ongoing() bool {
	return p.EndDate == nil
}

// DurationDays returns endDate - startDate + 1 in whole days.
// ok is false while the period is ongoing.
func (p Period) DurationDays() (int, bool) {
	if p.EndDate == nil {
		return 0, false
	}
	return DaysBetween(p.StartDate, *p.EndDate) + 1, true
}

// MovieNight is one movie-night calendar entry with both ratings.
type MovieNight struct {
	ID            string    `json:"id"`
	Date          time.Time `json:"date"`
	Title         string    `json:"title"`
	MyRating      int       `json:"my_rating"`
	PartnerRating int       `json:"partner_rating"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewMovieNight creates a movie night with a generated id.
func NewMovieNight(date time.Time, title string, myRating, partnerRating int) *MovieNight {
	return &MovieNight{
		ID:            uuid.NewString(),
		Date:          Midnight(date),
		Title:         title,
		MyRating:      myRating,
		PartnerRating: partnerRating,
		CreatedAt:     time.Now().UTC(),
	}
}

// Call is one night-call calendar entry. StartTime and Duration are
/// "HH:MM" strings, matching the wire format.
type Call struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"`
	Duration  string    `json:"duration"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCall creates a call entry with a generated id.
func NewCall(date time.Time, startTime, duration string) *Call {
	return &Call{
		ID:        uuid.NewString(),
		Date:      Midnight(date),
		StartTime: startTime,
		Duration:  duration,
		CreatedAt: time.Now().UTC(),
	}
}

// GymSession is one gym calendar entry.
type GymSession struct {
	ID            string    `json:"id"`
	Date          time.Time `json:"date"`
	Status        string    `json:"status"`
	WorkoutName   string    `json:"workout_name,omitempty"`
	ProgressPhoto string    `json:"progress_photo,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Gym session statuses.
const (
	GymCompleted = "completed"
	GymMissed    = "missed"
	GymRest      = "rest"
)

// ValidGymStatuses are the allowed gym session statuses.
var ValidGymStatuses = map[string]bool{
	GymCompleted: true,
	GymMissed:    true,
	GymRest:      true,
}

// NewGymSession creates a gym session with a generated id.
func NewGymSession(date time.Time, status, workoutName string) *GymSession {
	return &GymSession{
		ID:          uuid.NewString(),
		Date:        Midnight(date),
		Status:      status,
		WorkoutName: workoutName,
		CreatedAt:   time.Now().UTC(),
	}
}
