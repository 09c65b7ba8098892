// Package setlistfm fetches an artist's full performance history from the
// setlist.fm REST API and flattens it into raw setlist rows. The API is
// paginated and aggressively rate limited, so the client is deliberately
// slow: one page at a time, a polite delay after each success, retries with
// backoff on 429/5xx.
package setlistfm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/franz/setforge/internal/model"
	"github.com/franz/setforge/internal/util"
)

const (
	// BaseURL is the setlist.fm search endpoint.
	BaseURL = "https://api.setlist.fm/rest/1.0/search/setlists"

	// UserAgent identifies this application to setlist.fm.
	UserAgent = "setforge/1.0 (https://github.com/franz/setforge)"

	// SuccessDelay is the pause after every successful page, to respect
	// the documented rate limits.
	SuccessDelay = 1 * time.Second

	requestTimeout = 25 * time.Second
)

// Client handles setlist.fm API requests.
type Client struct {
	httpClient   *http.Client
	apiKey       string
	baseURL      string
	retry        *util.RetryConfig
	successDelay time.Duration
	showProgress bool
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at a different endpoint (tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithoutDelay disables the inter-page pause (tests).
func WithoutDelay() Option {
	return func(c *Client) { c.successDelay = 0 }
}

// WithProgress shows a progress bar over pages.
func WithProgress() Option {
	return func(c *Client) { c.showProgress = true }
}

// NewClient creates a setlist.fm API client. The API key is mandatory; the
// service rejects anonymous requests.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("setlist.fm API key is required")
	}
	c := &Client{
		httpClient:   &http.Client{Timeout: requestTimeout},
		apiKey:       apiKey,
		baseURL:      BaseURL,
		retry:        util.DefaultRetryConfig(),
		successDelay: SuccessDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// page mirrors the fields of a search response we care about.
type page struct {
	Type         string    `json:"type"`
	ItemsPerPage int       `json:"itemsPerPage"`
	Page         int       `json:"page"`
	Total        int       `json:"total"`
	Setlists     []setlist `json:"setlist"`
}

type setlist struct {
	EventDate string `json:"eventDate"` // dd-MM-yyyy
	Info      string `json:"info"`
	Tour      struct {
		Name string `json:"name"`
	} `json:"tour"`
	Venue struct {
		Name string `json:"name"`
		City struct {
			Name      string `json:"name"`
			State     string `json:"state"`
			StateCode string `json:"stateCode"`
			Country   struct {
				Name string `json:"name"`
				Code string `json:"code"`
			} `json:"country"`
		} `json:"city"`
	} `json:"venue"`
	Sets struct {
		Set []struct {
			Song []struct {
				Name  string `json:"name"`
				Info  string `json:"info"`
				Tape  bool   `json:"tape"`
				Cover struct {
					Name string `json:"name"`
				} `json:"cover"`
			} `json:"song"`
		} `json:"set"`
	} `json:"sets"`
}

// FetchAll pulls every setlist for the artist and returns the flattened raw
// rows in API order (newest show first, songs in played order).
func (c *Client) FetchAll(ctx context.Context, artistMBID string) ([]model.SetlistRow, error) {
	if artistMBID == "" {
		return nil, fmt.Errorf("artist MBID is required")
	}

	var rows []model.SetlistRow
	var bar *progressbar.ProgressBar

	for pageNum := 1; ; pageNum++ {
		p, err := c.fetchPage(ctx, artistMBID, pageNum)
		if err != nil {
			return nil, fmt.Errorf("fetching page %d: %w", pageNum, err)
		}
		if len(p.Setlists) == 0 {
			break
		}

		if bar == nil && c.showProgress && p.ItemsPerPage > 0 {
			totalPages := (p.Total + p.ItemsPerPage - 1) / p.ItemsPerPage
			bar = progressbar.Default(int64(totalPages), "fetching")
		}

		for _, s := range p.Setlists {
			rows = append(rows, flatten(s)...)
		}

		if bar != nil {
			_ = bar.Add(1)
		}

		if p.ItemsPerPage > 0 && pageNum*p.ItemsPerPage >= p.Total {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.successDelay):
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}
	util.InfoLog("Fetched %d raw setlist rows", len(rows))
	return rows, nil
}

// fetchPage retrieves one result page, retrying transient failures.
func (c *Client) fetchPage(ctx context.Context, artistMBID string, pageNum int) (*page, error) {
	var result *page
	err := util.Retry(ctx, c.retry, func() error {
		u := fmt.Sprintf("%s?artistMbid=%s&p=%d", c.baseURL, url.QueryEscape(artistMBID), pageNum)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("x-api-key", c.apiKey)
		req.Header.Set("User-Agent", UserAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode == http.StatusNotFound:
			// Past the last page; the API 404s instead of returning
			// an empty list.
			result = &page{}
			return nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return &util.RetryableStatusError{StatusCode: resp.StatusCode}
		default:
			body, _ := io.ReadAll(resp.Body)
			return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
		}

		var p page
		if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
		result = &p
		return nil
	})
	return result, err
}

// flatten turns one setlist into raw rows: one per song with its 1-based
// position across all sets, or a single empty-song row with position 0 when
// the show has no documented songs, so the show itself is still recorded.
func flatten(s setlist) []model.SetlistRow {
	base := model.SetlistRow{
		Date:        flipDate(s.EventDate),
		Venue:       s.Venue.Name,
		Tour:        s.Tour.Name,
		City:        s.Venue.City.Name,
		StateCode:   s.Venue.City.StateCode,
		StateName:   s.Venue.City.State,
		CountryCode: s.Venue.City.Country.Code,
		CountryName: s.Venue.City.Country.Name,
		ShowNotes:   s.Info,
	}

	var rows []model.SetlistRow
	position := 0
	for _, set := range s.Sets.Set {
		for _, song := range set.Song {
			if song.Name == "" {
				continue
			}
			position++
			row := base
			row.Song = song.Name
			row.Position = strconv.Itoa(position)
			row.Notes = songNotes(song.Info, song.Cover.Name, song.Tape)
			rows = append(rows, row)
		}
	}

	if len(rows) == 0 {
		row := base
		row.Position = "0"
		rows = append(rows, row)
	}
	return rows
}

func songNotes(info, coverOf string, tape bool) string {
	notes := info
	if coverOf != "" {
		if notes != "" {
			notes += "; "
		}
		notes += "cover of " + coverOf
	}
	if tape {
		if notes != "" {
			notes += "; "
		}
		notes += "from tape"
	}
	return notes
}

// flipDate converts the API's dd-MM-yyyy into the pipeline's MM/DD/YYYY.
// Unparseable dates pass through untouched; the normalizer deals with them.
func flipDate(eventDate string) string {
	t, err := time.Parse("02-01-2006", eventDate)
	if err != nil {
		return eventDate
	}
	return t.Format("01/02/2006")
}
