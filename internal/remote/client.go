// Package remote implements the tracker storage contract over the
// REST API (/api/items, /api/periods, /api/movies, /api/calls,
// /api/gym) served by the heartlog backend.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jasperquin/heartlog/internal/cycle"
	"github.com/jasperquin/heartlog/internal/gym"
	"github.com/jasperquin/heartlog/internal/model"
	"github.com/jasperquin/heartlog/internal/store"
)

// Client talks to the remote tracker API. It satisfies store.Store so
// commands can run against either backend.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

var _ store.Store = (*Client)(nil)

// do sends a request and decodes the JSON response into out (when out
// is non-nil). Status codes of 400 and above become errors carrying
// the response body.
func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if len(query) > 0 {
		q := req.URL.Query()
		for k, v := range query {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("remote API request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("remote API returned %d: %s", resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func monthQuery(f store.MonthFilter) map[string]string {
	if f.Year == 0 {
		return nil
	}
	return map[string]string{
		"year":  fmt.Sprintf("%d", f.Year),
		"month": fmt.Sprintf("%d", f.Month),
	}
}

// parseWireDate accepts both full ISO timestamps and bare dates.
func parseWireDate(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return model.Midnight(t.UTC())
	}
	t, _ := model.ParseDate(s)
	return t
}

// --- Items ---

// remoteItem maps one item from the API response.
type remoteItem struct {
	ID        string `json:"_id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

func (r remoteItem) toModel() model.Item {
	it := model.Item{
		ID:       r.ID,
		Title:    r.Title,
		Category: r.Category,
		Status:   r.Status,
	}
	if t, err := time.Parse(time.RFC3339, r.CreatedAt); err == nil {
		it.CreatedAt = t
	}
	return it
}

func (c *Client) ListItems(ctx context.Context, f store.ItemFilter) ([]model.Item, error) {
	var raw []remoteItem
	if err := c.do(ctx, http.MethodGet, "/api/items", nil, nil, &raw); err != nil {
		return nil, err
	}
	var items []model.Item
	for _, r := range raw {
		it := r.toModel()
		if f.Category != "" && it.Category != f.Category {
			continue
		}
		if f.Status != "" && it.Status != f.Status {
			continue
		}
		items = append(items, it)
	}
	return items, nil
}

func (c *Client) CreateItem(ctx context.Context, title, category string) (*model.Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if !model.ValidCategories[category] {
		return nil, fmt.Errorf("invalid category %q", category)
	}

	payload := map[string]string{
		"title":    title,
		"category": category,
		"status":   model.StatusTodo,
	}
	var raw remoteItem
	if err := c.do(ctx, http.MethodPost, "/api/items", nil, payload, &raw); err != nil {
		return nil, err
	}
	it := raw.toModel()
	return &it, nil
}

func (c *Client) PatchItem(ctx context.Context, id string, patch store.ItemPatch) (*model.Item, error) {
	payload := map[string]string{}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, fmt.Errorf("title is required")
		}
		payload["title"] = title
	}
	if patch.Status != nil {
		if !model.ValidStatuses[*patch.Status] {
			return nil, fmt.Errorf("invalid status %q", *patch.Status)
		}
		payload["status"] = *patch.Status
	}

	var raw remoteItem
	if err := c.do(ctx, http.MethodPatch, "/api/items/"+id, nil, payload, &raw); err != nil {
		return nil, err
	}
	it := raw.toModel()
	return &it, nil
}

func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/items/"+id, nil, nil, nil)
}

// --- Periods ---

// remotePeriod maps one period from the API response.
type remotePeriod struct {
	ID        string  `json:"_id"`
	StartDate string  `json:"startDate"`
	EndDate   *string `json:"endDate"`
	Notes     string  `json:"notes"`
	Mood      string  `json:"mood"`
}

// periodPayload is the JSON body sent when creating or replacing a
// period. EndDate serializes as an explicit null while ongoing.
type periodPayload struct {
	StartDate string  `json:"startDate"`
	EndDate   *string `json:"endDate"`
	Notes     string  `json:"notes"`
	Mood      string  `json:"mood"`
}

func (r remotePeriod) toModel() model.Period {
	p := model.Period{
		ID:        r.ID,
		StartDate: parseWireDate(r.StartDate),
		Notes:     r.Notes,
		Mood:      r.Mood,
	}
	if r.EndDate != nil && *r.EndDate != "" {
		end := parseWireDate(*r.EndDate)
		p.EndDate = &end
	}
	return p
}

func periodBody(p store.PeriodParams) (periodPayload, error) {
	if p.StartDate.IsZero() {
		return periodPayload{}, fmt.Errorf("start date is required")
	}
	if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
		return periodPayload{}, fmt.Errorf("end date is before start date")
	}
	body := periodPayload{
		StartDate: model.Midnight(p.StartDate).Format(time.RFC3339),
		Notes:     p.Notes,
		Mood:      p.Mood,
	}
	if p.EndDate != nil {
		end := model.Midnight(*p.EndDate).Format(time.RFC3339)
		body.EndDate = &end
	}
	return body, nil
}

func (c *Client) ListPeriods(ctx context.Context, f store.MonthFilter) ([]model.Period, error) {
	var raw []remotePeriod
	if err := c.do(ctx, http.MethodGet, "/api/periods", nil, nil, &raw); err != nil {
		return nil, err
	}
	var periods []model.Period
	for _, r := range raw {
		p := r.toModel()
		if f.Year != 0 && (p.StartDate.Year() != f.Year || int(p.StartDate.Month()) != f.Month) {
			continue
		}
		periods = append(periods, p)
	}
	return periods, nil
}

func (c *Client) CreatePeriod(ctx context.Context, p store.PeriodParams) (*model.Period, error) {
	body, err := periodBody(p)
	if err != nil {
		return nil, err
	}
	var raw remotePeriod
	if err := c.do(ctx, http.MethodPost, "/api/periods", nil, body, &raw); err != nil {
		return nil, err
	}
	rec := raw.toModel()
	return &rec, nil
}

// UpdatePeriod replaces the full record, matching the backend's PUT
// semantics for the periods collection.
func (c *Client) UpdatePeriod(ctx context.Context, id string, p store.PeriodParams) (*model.Period, error) {
	body, err := periodBody(p)
	if err != nil {
		return nil, err
	}
	var raw remotePeriod
	if err := c.do(ctx, http.MethodPut, "/api/periods/"+id, nil, body, &raw); err != nil {
		return nil, err
	}
	rec := raw.toModel()
	return &rec, nil
}

// remotePeriodSummary mirrors the stats/summary resource, where
// recent cycles arrive as objects.
type remotePeriodSummary struct {
	AverageCycleLength float64 `json:"averageCycleLength"`
	CycleRegularity    string  `json:"cycleRegularity"`
	AveragePeriodDays  float64 `json:"averagePeriodDays"`
	LastPeriodDate     string  `json:"lastPeriodDate"`
	RecentCycles       []struct {
		CycleLength int `json:"cycleLength"`
	} `json:"recentCycles"`
}

func (c *Client) PeriodSummary(ctx context.Context) (*cycle.Summary, error) {
	var raw remotePeriodSummary
	if err := c.do(ctx, http.MethodGet, "/api/periods/stats/summary", nil, nil, &raw); err != nil {
		return nil, err
	}
	s := cycle.Summary{
		AverageCycleLength: raw.AverageCycleLength,
		CycleRegularity:    raw.CycleRegularity,
		AveragePeriodDays:  raw.AveragePeriodDays,
	}
	if raw.LastPeriodDate != "" {
		last := parseWireDate(raw.LastPeriodDate)
		s.LastPeriodDate = &last
	}
	for _, rc := range raw.RecentCycles {
		if rc.CycleLength > 0 {
			s.RecentCycles = append(s.RecentCycles, rc.CycleLength)
		}
	}
	return &s, nil
}

// --- Movie nights ---

type remoteMovie struct {
	ID            string `json:"_id"`
	Date          string `json:"date"`
	Title         string `json:"movieTitle"`
	MyRating      int    `json:"myRating"`
	PartnerRating int    `json:"partnerRating"`
}

func (c *Client) ListMovieNights(ctx context.Context, f store.MonthFilter) ([]model.MovieNight, error) {
	var raw []remoteMovie
	if err := c.do(ctx, http.MethodGet, "/api/movies", monthQuery(f), nil, &raw); err != nil {
		return nil, err
	}
	var movies []model.MovieNight
	for _, r := range raw {
		movies = append(movies, model.MovieNight{
			ID:            r.ID,
			Date:          parseWireDate(r.Date),
			Title:         r.Title,
			MyRating:      r.MyRating,
			PartnerRating: r.PartnerRating,
		})
	}
	return movies, nil
}

func (c *Client) SaveMovieNight(ctx context.Context, m *model.MovieNight) (*model.MovieNight, error) {
	payload := map[string]interface{}{
		"date":          m.Date.Format(time.RFC3339),
		"movieTitle":    m.Title,
		"myRating":      m.MyRating,
		"partnerRating": m.PartnerRating,
	}
	var raw remoteMovie
	if err := c.do(ctx, http.MethodPost, "/api/movies", nil, payload, &raw); err != nil {
		return nil, err
	}
	saved := *m
	if raw.ID != "" {
		saved.ID = raw.ID
	}
	return &saved, nil
}

// --- Calls ---

type remoteCall struct {
	ID        string `json:"_id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	Duration  string `json:"duration"`
}

func (c *Client) ListCalls(ctx context.Context, f store.MonthFilter) ([]model.Call, error) {
	var raw []remoteCall
	if err := c.do(ctx, http.MethodGet, "/api/calls", monthQuery(f), nil, &raw); err != nil {
		return nil, err
	}
	var calls []model.Call
	for _, r := range raw {
		calls = append(calls, model.Call{
			ID:        r.ID,
			Date:      parseWireDate(r.Date),
			StartTime: r.StartTime,
			Duration:  r.Duration,
		})
	}
	return calls, nil
}

func (c *Client) SaveCall(ctx context.Context, call *model.Call) (*model.Call, error) {
	payload := map[string]string{
		"date":      call.Date.Format(time.RFC3339),
		"startTime": call.StartTime,
		"duration":  call.Duration,
	}
	var raw remoteCall
	if err := c.do(ctx, http.MethodPost, "/api/calls", nil, payload, &raw); err != nil {
		return nil, err
	}
	saved := *call
	if raw.ID != "" {
		saved.ID = raw.ID
	}
	return &saved, nil
}

// --- Gym sessions ---

type remoteGymSession struct {
	ID            string `json:"_id"`
	Date          string `json:"date"`
	Status        string `json:"status"`
	WorkoutName   string `json:"workoutName"`
	ProgressPhoto string `json:"progressPhoto"`
}

func (c *Client) ListGymSessions(ctx context.Context, f store.MonthFilter) ([]model.GymSession, error) {
	var raw []remoteGymSession
	if err := c.do(ctx, http.MethodGet, "/api/gym", monthQuery(f), nil, &raw); err != nil {
		return nil, err
	}
	var sessions []model.GymSession
	for _, r := range raw {
		sessions = append(sessions, model.GymSession{
			ID:            r.ID,
			Date:          parseWireDate(r.Date),
			Status:        r.Status,
			WorkoutName:   r.WorkoutName,
			ProgressPhoto: r.ProgressPhoto,
		})
	}
	return sessions, nil
}

func (c *Client) SaveGymSession(ctx context.Context, g *model.GymSession) (*model.GymSession, error) {
	if !model.ValidGymStatuses[g.Status] {
		return nil, fmt.Errorf("invalid gym status %q", g.Status)
	}
	payload := map[string]string{
		"date":          g.Date.Format(time.RFC3339),
		"status":        g.Status,
		"workoutName":   g.WorkoutName,
		"progressPhoto": g.ProgressPhoto,
	}
	var raw remoteGymSession
	if err := c.do(ctx, http.MethodPost, "/api/gym", nil, payload, &raw); err != nil {
		return nil, err
	}
	saved := *g
	if raw.ID != "" {
		saved.ID = raw.ID
	}
	return &saved, nil
}

// remoteGymSummary mirrors the gym stats/summary resource.
type remoteGymSummary struct {
	TotalSessions int `json:"totalSessions"`
	MissedDays    int `json:"missedDays"`
	CurrentStreak int `json:"currentStreak"`
	RecentMisses  int `json:"recentMisses"`
}

func (c *Client) GymSummary(ctx context.Context, f store.MonthFilter) (*gym.Summary, error) {
	var raw remoteGymSummary
	if err := c.do(ctx, http.MethodGet, "/api/gym/stats/summary", monthQuery(f), nil, &raw); err != nil {
		return nil, err
	}
	return &gym.Summary{
		TotalSessions: raw.TotalSessions,
		MissedDays:    raw.MissedDays,
		CurrentStreak: raw.CurrentStreak,
		RecentMisses:  raw.RecentMisses,
	}, nil
}

// Close satisfies store.Store; there is nothing to release.
func (c *Client) Close() error {
	return nil
}
