// Package unidata retrieves university reference data from public sources.
// It wraps the Hipolabs universities API for catalog seeding and scrapes
// university homepages for descriptive metadata.
package unidata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/akshay/uni-counsellor/internal/types"
)

// DefaultBaseURL is the public Hipolabs universities API endpoint.
const DefaultBaseURL = "http://universities.hipolabs.com"

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; UniCounsellor/1.0)"

// Error represents a failure talking to an upstream data source.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unidata error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("unidata error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// DefaultOptions returns sensible defaults for catalog seeding.
func DefaultOptions() *Options {
	return &Options{
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Client talks to the Hipolabs universities API and to university homepages.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewClient builds a Client from opts, falling back to DefaultOptions.
func NewClient(opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Record is one university entry as returned by the Hipolabs API.
type Record struct {
	Name          string   `json:"name"`
	Country       string   `json:"country"`
	StateProvince *string  `json:"state-province"`
	WebPages      []string `json:"web_pages"`
	Domains       []string `json:"domains"`
}

// Website returns the record's primary homepage, or "" when none is listed.
func (r Record) Website() string {
	if len(r.WebPages) == 0 {
		return ""
	}
	return r.WebPages[0]
}

// ToUniversity converts a record to a catalog entry. Only fields the API
// provides are filled; enrichment and curation fill the rest.
func (r Record) ToUniversity() types.University {
	u := types.University{
		Name:    r.Name,
		Country: r.Country,
		Website: r.Website(),
	}
	if r.StateProvince != nil {
		u.State = *r.StateProvince
	}
	return u
}

// SearchByCountry fetches all universities the API knows for a country.
func (c *Client) SearchByCountry(ctx context.Context, country string) ([]Record, error) {
	reqURL := fmt.Sprintf("%s/search?country=%s", c.baseURL, url.QueryEscape(country))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &Error{URL: reqURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{URL: reqURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{URL: reqURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: reqURL, Message: "failed to read response body", Cause: err}
	}

	var records []Record
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, &Error{URL: reqURL, Message: "failed to decode response", Cause: err}
	}
	return records, nil
}
