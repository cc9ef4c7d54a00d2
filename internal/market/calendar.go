package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"finbot/internal/errors"
	"finbot/internal/models"
)

const calendarTimeLayout = "2006-01-02 15:04:05"

// Calendar fetches the provider economic calendar over the one-day window
// [date, date+1), re-filters client-side to exactly date, then keeps only
// high-impact events. An empty day is errors.ErrNoEvents; a day whose events
// are all lower-impact is errors.ErrNoHighImpactEvents.
func (c *Client) Calendar(ctx context.Context, date time.Time) ([]models.CalendarEvent, error) {
	from := date.Format("2006-01-02")
	to := date.AddDate(0, 0, 1).Format("2006-01-02")

	reqURL := fmt.Sprintf("%s/calendar/economic?from=%s&to=%s&token=%s",
		c.baseURL, from, to, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.NewUpstreamError("finnhub", "calendar", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewUpstreamError("finnhub", "calendar", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewUpstreamError("finnhub", "calendar",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var raw calendarResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, errors.NewUpstreamError("finnhub", "calendar", err)
	}

	var onDate, high []models.CalendarEvent
	for _, row := range raw.EconomicCalendar {
		when, err := time.Parse(calendarTimeLayout, row.Time)
		if err != nil {
			continue
		}
		// The provider window spans two calendar dates; keep only the target.
		if !sameDate(when, date) {
			continue
		}
		ev := models.CalendarEvent{
			Zone:     row.Country,
			Time:     when,
			Event:    row.Event,
			Actual:   row.Actual,
			Forecast: row.Estimate,
			Previous: row.Prev,
			Impact:   row.Impact,
		}
		onDate = append(onDate, ev)
		if ev.Impact == "high" {
			high = append(high, ev)
		}
	}

	if len(onDate) == 0 {
		return nil, errors.ErrNoEvents
	}
	if len(high) == 0 {
		return nil, errors.ErrNoHighImpactEvents
	}
	return high, nil
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

type calendarResponse struct {
	EconomicCalendar []calendarRow `json:"economicCalendar"`
}

type calendarRow struct {
	Actual   *float64 `json:"actual"`
	Country  string   `json:"country"`
	Estimate *float64 `json:"estimate"`
	Event    string   `json:"event"`
	Impact   string   `json:"impact"`
	Prev     *float64 `json:"prev"`
	Time     string   `json:"time"`
}
