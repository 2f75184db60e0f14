package unidata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/akshay/uni-counsellor/internal/types"
)

// Enrichment holds descriptive metadata scraped from a university homepage.
type Enrichment struct {
	Title    string
	ImageURL string
}

// EnrichFromHomepage fetches a university's homepage and extracts its page
// title and social-preview image. Callers treat a returned error as "skip
// enrichment"; a seed run never fails because a homepage is unreachable.
func (c *Client) EnrichFromHomepage(ctx context.Context, homepage string) (*Enrichment, error) {
	parsed, err := url.Parse(homepage)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: homepage, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, homepage, nil)
	if err != nil {
		return nil, &Error{URL: homepage, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{URL: homepage, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{URL: homepage, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &Error{URL: homepage, Message: "failed to parse HTML", Cause: err}
	}

	return extractEnrichment(doc), nil
}

// extractEnrichment pulls the title and social image out of a parsed page.
// Open Graph tags win over the bare <title> element because homepages often
// pad the title with slogans.
func extractEnrichment(doc *goquery.Document) *Enrichment {
	e := &Enrichment{}

	if content, ok := metaContent(doc, `meta[property="og:title"]`); ok {
		e.Title = content
	} else {
		e.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	if content, ok := metaContent(doc, `meta[property="og:image"]`); ok {
		e.ImageURL = content
	} else if content, ok := metaContent(doc, `meta[name="twitter:image"]`); ok {
		e.ImageURL = content
	}

	return e
}

func metaContent(doc *goquery.Document, selector string) (string, bool) {
	content, exists := doc.Find(selector).First().Attr("content")
	content = strings.TrimSpace(content)
	return content, exists && content != ""
}

// Apply copies enrichment data onto a catalog entry without overwriting
// values that are already set.
func (e *Enrichment) Apply(u *types.University) {
	if e == nil || u == nil {
		return
	}
	if u.Logo == "" && e.ImageURL != "" {
		u.Logo = e.ImageURL
	}
}
