package social

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"sniper-agent/internal/domain"
)

// Default configuration values.
const (
	DefaultTimeout = 10 * time.Second

	// maxBodyBytes bounds how much of an account page is read.
	maxBodyBytes = 4 << 20
)

var (
	// postPattern matches individual post bodies on mirror pages.
	postPattern = regexp.MustCompile(`(?is)<div[^>]+class="[^"]*tweet-content[^"]*"[^>]*>(.*?)</div>`)

	// tagPattern strips any remaining markup from a post body.
	tagPattern = regexp.MustCompile(`<[^>]*>`)

	// scriptPattern removes script/style blocks before text extraction.
	scriptPattern = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
)

// HTTPSource scrapes account pages from an HTML mirror and returns the
// post texts found there.
type HTTPSource struct {
	baseURL string
	client  *http.Client
	now     func() time.Time
}

// Option configures HTTPSource.
type Option func(*HTTPSource)

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *HTTPSource) {
		s.client = client
	}
}

// NewHTTPSource creates a source scraping baseURL/<account>.
func NewHTTPSource(baseURL string, opts ...Option) *HTTPSource {
	s := &HTTPSource{
		baseURL: baseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Compile-time interface check.
var _ Source = (*HTTPSource)(nil)

// RecentPosts fetches the account page and extracts up to limit post
// texts. If the page has no recognizable post markup the whole page
// text is returned as a single blob, so address extraction still gets
// a chance to run.
func (s *HTTPSource) RecentPosts(ctx context.Context, account string, limit int) ([]domain.RawPost, error) {
	url := fmt.Sprintf("%s/%s", s.baseURL, account)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch account page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("account page status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read account page: %w", err)
	}

	fetchedAt := s.now().UnixMilli()
	page := scriptPattern.ReplaceAllString(string(body), " ")

	var posts []domain.RawPost
	for _, match := range postPattern.FindAllStringSubmatch(page, -1) {
		if limit > 0 && len(posts) >= limit {
			break
		}
		text := cleanText(match[1])
		if text == "" {
			continue
		}
		posts = append(posts, domain.RawPost{
			Account:   account,
			Text:      text,
			FetchedAt: fetchedAt,
		})
	}

	if len(posts) == 0 {
		if text := cleanText(page); text != "" {
			posts = append(posts, domain.RawPost{
				Account:   account,
				Text:      text,
				FetchedAt: fetchedAt,
			})
		}
	}

	return posts, nil
}

// cleanText strips markup, unescapes entities and collapses whitespace.
func cleanText(raw string) string {
	text := tagPattern.ReplaceAllString(raw, " ")
	text = html.UnescapeString(text)
	return strings.Join(strings.Fields(text), " ")
}
