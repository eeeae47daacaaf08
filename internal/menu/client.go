package menu

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client fetches the daily menu from the Sodexo daily_json endpoint.
// Every call is stateless; failures surface as errors and are never
// translated into user-facing text here.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	restaurantID string
	loc          *time.Location
	now          func() time.Time
}

// NewClient builds a menu client. The timeout bounds the whole request;
// loc decides what "today" means for the date path segments.
func NewClient(baseURL, restaurantID string, timeout time.Duration, loc *time.Location) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		baseURL:      strings.TrimRight(baseURL, "/"),
		restaurantID: restaurantID,
		loc:          loc,
		now:          time.Now,
	}
}

// courseDTO mirrors the provider payload. Pointers distinguish absent
// fields, which default to "NA" like the provider's own clients expect.
type courseDTO struct {
	TitleFi    *string `json:"title_fi"`
	TitleEn    *string `json:"title_en"`
	Properties *string `json:"properties"`
	Category   *string `json:"category"`
}

type menuDTO struct {
	Courses []courseDTO `json:"courses"`
}

// Today fetches the menu for the current date in the client's location.
func (c *Client) Today(ctx context.Context) (Menu, error) {
	return c.ForDate(ctx, c.now().In(c.loc))
}

// ForDate fetches the menu for an arbitrary date.
func (c *Client) ForDate(ctx context.Context, date time.Time) (Menu, error) {
	// Path segments are unpadded, matching the provider's URL scheme.
	url := fmt.Sprintf("%s/%s/%d/%d/%d/fi",
		c.baseURL, c.restaurantID, date.Year(), int(date.Month()), date.Day())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build menu request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch menu: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch menu: unexpected status %d", resp.StatusCode)
	}

	var dto menuDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}

	m := make(Menu, 0, len(dto.Courses))
	for _, course := range dto.Courses {
		m = append(m, Course{
			TitleFi:    orNA(course.TitleFi),
			TitleEn:    orNA(course.TitleEn),
			Properties: orNA(course.Properties),
			Category:   orEmpty(course.Category),
		})
	}
	return m, nil
}

func orNA(s *string) string {
	if s == nil {
		return "NA"
	}
	return *s
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
