// Package store provides the tracker storage contract and its SQLite
// implementation. The same contract is implemented over HTTP by the
// remote package.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/jasperquin/heartlog/internal/cycle"
	"github.com/jasperquin/heartlog/internal/gym"
	"github.com/jasperquin/heartlog/internal/model"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("record not found")

// ErrOngoingExists is returned when saving an ongoing period while a
// different period is still open.
var ErrOngoingExists = errors.New("another period is still ongoing")

// ItemFilter narrows an item listing. Empty fields match everything.
type ItemFilter struct {
	Category string
	Status   string
}

// ItemPatch is a partial item update. Nil fields are left unchanged.
// Status is the only field the board's move rule ever touches.
type ItemPatch struct {
	Title  *string
	Status *string
}

// MonthFilter narrows a calendar listing to one month. A zero Year
// matches everything. Month is 1-based.
type MonthFilter struct {
	Year  int
	Month int
}

// Range returns the half-open UTC date range [from, to) the filter
// covers. ok is false for the match-all filter.
func (f MonthFilter) Range() (from, to time.Time, ok bool) {
	if f.Year == 0 {
		return time.Time{}, time.Time{}, false
	}
	from = time.Date(f.Year, time.Month(f.Month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0), true
}

// PeriodParams holds the writable fields of a period record.
type PeriodParams struct {
	StartDate time.Time
	EndDate   *time.Time
	Notes     string
	Mood      string
}

// Store is the tracker storage contract.
type Store interface {
	// Items (shared list board).
	ListItems(ctx context.Context, f ItemFilter) ([]model.Item, error)
	CreateItem(ctx context.Context, title, category string) (*model.Item, error)
	PatchItem(ctx context.Context, id string, patch ItemPatch) (*model.Item, error)
	DeleteItem(ctx context.Context, id string) error

	// Periods. There is no delete in the documented flow; editing can
	// clear the end date to reopen a period.
	ListPeriods(ctx context.Context, f MonthFilter) ([]model.Period, error)
	CreatePeriod(ctx context.Context, p PeriodParams) (*model.Period, error)
	UpdatePeriod(ctx context.Context, id string, p PeriodParams) (*model.Period, error)
	PeriodSummary(ctx context.Context) (*cycle.Summary, error)

	// Calendar collections, keyed by date: saving over an existing
	// date replaces that day's entry.
	ListMovieNights(ctx context.Context, f MonthFilter) ([]model.MovieNight, error)
	SaveMovieNight(ctx context.Context, m *model.MovieNight) (*model.MovieNight, error)
	ListCalls(ctx context.Context, f MonthFilter) ([]model.Call, error)
	SaveCall(ctx context.Context, c *model.Call) (*model.Call, error)
	ListGymSessions(ctx context.Context, f MonthFilter) ([]model.GymSession, error)
	SaveGymSession(ctx context.Context, g *model.GymSession) (*model.GymSession, error)
	GymSummary(ctx context.Context, f MonthFilter) (*gym.Summary, error)

	Close() error
}
