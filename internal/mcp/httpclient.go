package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/setlog/internal/models"
	"github.com/claude/setlog/internal/tracker"
)

// HTTPClient implements DataSource by calling the setlog REST API. Used for
// remote MCP mode where the binary runs locally (stdio) but the workout log
// lives on the remote server.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("httpclient: %s: status %d: %s", path, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("httpclient: %s: decode: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) DayTotals(ctx context.Context, date string) (models.Totals, error) {
	var totals models.Totals
	err := c.get(ctx, "/api/v1/days/"+url.PathEscape(date)+"/totals", nil, &totals)
	return totals, err
}

func (c *HTTPClient) WorkoutTotals(ctx context.Context, date, workoutTypeID string) (models.Totals, error) {
	var totals models.Totals
	path := fmt.Sprintf("/api/v1/days/%s/workouts/%s/totals", url.PathEscape(date), url.PathEscape(workoutTypeID))
	err := c.get(ctx, path, nil, &totals)
	return totals, err
}

func (c *HTTPClient) Progression(ctx context.Context, date, workoutTypeID string) (*tracker.Progression, error) {
	var prog tracker.Progression
	path := fmt.Sprintf("/api/v1/days/%s/workouts/%s/progression", url.PathEscape(date), url.PathEscape(workoutTypeID))
	if err := c.get(ctx, path, nil, &prog); err != nil {
		return nil, err
	}
	return &prog, nil
}

func (c *HTTPClient) ExerciseProgression(ctx context.Context, date, workoutTypeID, name string) (*tracker.ExerciseProgression, error) {
	var prog tracker.ExerciseProgression
	path := fmt.Sprintf("/api/v1/days/%s/workouts/%s/exercise-progression", url.PathEscape(date), url.PathEscape(workoutTypeID))
	params := url.Values{"name": {name}}
	if err := c.get(ctx, path, params, &prog); err != nil {
		return nil, err
	}
	return &prog, nil
}

func (c *HTTPClient) WorkoutTypes(ctx context.Context) ([]models.WorkoutType, error) {
	var types []models.WorkoutType
	err := c.get(ctx, "/api/v1/types", nil, &types)
	return types, err
}

func (c *HTTPClient) LoggedDates(ctx context.Context) ([]string, error) {
	var dates []string
	err := c.get(ctx, "/api/v1/dates", nil, &dates)
	return dates, err
}
