package riskscore

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"sniper-agent/internal/domain"
	"sniper-agent/internal/observability"
)

// Default configuration values.
const (
	DefaultTimeout = 10 * time.Second

	// maxBodyBytes bounds how much of the score page is read.
	maxBodyBytes = 1 << 20
)

// scorePattern extracts the percentage value from the score widget,
// e.g. `class="score-value">87%` or a bare `87.5 %` inside the safety
// section. The page layout is owned by the scoring source and changes
// without notice; the whole parse is quarantined behind this pattern.
var scorePattern = regexp.MustCompile(`(?i)(?:safety|score)[^%]{0,80}?(\d{1,3}(?:\.\d+)?)\s*%`)

// HTMLProvider implements Provider by scraping the scoring source's
// token page.
type HTMLProvider struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

// Option configures HTMLProvider.
type Option func(*HTMLProvider)

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(p *HTMLProvider) {
		p.client = client
	}
}

// NewHTMLProvider creates a provider scraping baseURL/<address>.
func NewHTMLProvider(baseURL string, logger *log.Logger, opts ...Option) *HTMLProvider {
	p := &HTMLProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Compile-time interface check.
var _ Provider = (*HTMLProvider)(nil)

// Score fetches the token page and extracts the safety percentage.
// Any transport failure, non-200 status, missing element or
// out-of-range value yields ScoreUnknown.
func (p *HTMLProvider) Score(ctx context.Context, address string) domain.Score {
	url := fmt.Sprintf("%s/%s", p.baseURL, address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		p.logger.Printf("riskscore: create request for %s: %v", address, err)
		return domain.ScoreUnknown
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	observability.RecordExternalCall("riskscore", time.Since(start).Seconds())
	if err != nil {
		p.logger.Printf("riskscore: fetch %s: %v", address, err)
		return domain.ScoreUnknown
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.logger.Printf("riskscore: status %d for %s", resp.StatusCode, address)
		return domain.ScoreUnknown
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		p.logger.Printf("riskscore: read body for %s: %v", address, err)
		return domain.ScoreUnknown
	}

	matches := scorePattern.FindSubmatch(body)
	if matches == nil {
		return domain.ScoreUnknown
	}

	value, err := strconv.ParseFloat(string(matches[1]), 64)
	if err != nil || value < 0 || value > 100 {
		return domain.ScoreUnknown
	}

	return domain.NewScore(value)
}
