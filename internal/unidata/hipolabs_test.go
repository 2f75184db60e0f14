package unidata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchByCountry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Canada", r.URL.Query().Get("country"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{
				"name": "University of Toronto",
				"country": "Canada",
				"state-province": "Ontario",
				"web_pages": ["https://www.utoronto.ca/"],
				"domains": ["utoronto.ca"]
			},
			{
				"name": "McGill University",
				"country": "Canada",
				"state-province": null,
				"web_pages": [],
				"domains": ["mcgill.ca"]
			}
		]`))
	}))
	defer srv.Close()

	client := NewClient(&Options{BaseURL: srv.URL})
	records, err := client.SearchByCountry(context.Background(), "Canada")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "University of Toronto", records[0].Name)
	assert.Equal(t, "https://www.utoronto.ca/", records[0].Website())
	assert.Equal(t, []string{"utoronto.ca"}, records[0].Domains)

	assert.Equal(t, "McGill University", records[1].Name)
	assert.Empty(t, records[1].Website())
}

func TestSearchByCountry_EscapesCountry(t *testing.T) {
	var gotCountry string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCountry = r.URL.Query().Get("country")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(&Options{BaseURL: srv.URL})
	records, err := client.SearchByCountry(context.Background(), "United Kingdom")
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, "United Kingdom", gotCountry)
}

func TestSearchByCountry_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(&Options{BaseURL: srv.URL})
	_, err := client.SearchByCountry(context.Background(), "Canada")
	require.Error(t, err)

	var uerr *Error
	require.ErrorAs(t, err, &uerr)
	assert.Contains(t, uerr.Message, "HTTP status 500")
}

func TestSearchByCountry_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := NewClient(&Options{BaseURL: srv.URL})
	_, err := client.SearchByCountry(context.Background(), "Canada")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestRecordToUniversity(t *testing.T) {
	province := "Ontario"
	rec := Record{
		Name:          "University of Toronto",
		Country:       "Canada",
		StateProvince: &province,
		WebPages:      []string{"https://www.utoronto.ca/", "https://utoronto.ca/"},
	}

	u := rec.ToUniversity()
	assert.Equal(t, "University of Toronto", u.Name)
	assert.Equal(t, "Canada", u.Country)
	assert.Equal(t, "Ontario", u.State)
	assert.Equal(t, "https://www.utoronto.ca/", u.Website)
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(nil)
	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, DefaultUserAgent, client.userAgent)
	assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
}
