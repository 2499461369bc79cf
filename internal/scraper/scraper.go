package scraper

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	ScheduleURL = "https://operations.nfl.com/gameday/nfl-schedule/2025-nfl-schedule/"
	UserAgent   = "pickem-schedule/1.0 (github.com/pfrederiksen/pickem-schedule)"
	Timeout     = 30 * time.Second
)

// Scraper fetches the schedule page
type Scraper struct {
	client *http.Client
	url    string
}

// New creates a Scraper for the given page. An empty url uses ScheduleURL
// and a non-positive timeout uses Timeout.
func New(url string, timeout time.Duration) *Scraper {
	if url == "" {
		url = ScheduleURL
	}
	if timeout <= 0 {
		timeout = Timeout
	}
	return &Scraper{
		client: &http.Client{
			Timeout: timeout,
		},
		url: url,
	}
}

// URL returns the page the scraper fetches
func (s *Scraper) URL() string {
	return s.url
}

// FetchLines fetches the schedule page and returns its text lines
func (s *Scraper) FetchLines(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return ParseLines(resp.Body)
}

// ParseLines extracts the visible text of an HTML document as normalized
// lines in document order.
func ParseLines(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	doc.Find("script, style, noscript, template").Remove()

	lines := make([]string, 0)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			for _, raw := range strings.Split(n.Data, "\n") {
				if line := NormalizeLine(raw); line != "" {
					lines = append(lines, line)
				}
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	doc.Find("body").Each(func(_ int, sel *goquery.Selection) {
		for _, n := range sel.Nodes {
			walk(n)
		}
	})

	return lines, nil
}

// SplitLines reads plain text and returns its normalized, non-empty lines
func SplitLines(r io.Reader) ([]string, error) {
	lines := make([]string, 0)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := NormalizeLine(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading lines: %w", err)
	}
	return lines, nil
}

// NormalizeLine trims a line and collapses runs of whitespace, including
// non-breaking spaces, to a single space.
func NormalizeLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
