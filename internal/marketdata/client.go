// Package marketdata fetches daily chart history from the Yahoo finance chart API.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/juv/sma-tracker/internal/apperr"
)

const (
	defaultTimeout = 10 * time.Second
	// The upstream rejects requests without a User-Agent; the value itself is arbitrary.
	userAgent = "application/json"
)

type chartResponse struct {
	Chart chartEnvelope `json:"chart"`
}

type chartEnvelope struct {
	Result []chartResult `json:"result"`
}

type chartResult struct {
	Meta       chartMeta       `json:"meta"`
	Indicators chartIndicators `json:"indicators"`
}

type chartMeta struct {
	Currency           string  `json:"currency"`
	Symbol             string  `json:"symbol"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
}

type chartIndicators struct {
	Quote []chartQuote `json:"quote"`
}

type chartQuote struct {
	Close []*float64 `json:"close"`
}

// Snapshot is the market state consulted by a single evaluation. A nil entry
// in DailyCloses is a data gap (missing trading day); gaps keep their
// positions in the sequence.
type Snapshot struct {
	Symbol       string
	Currency     string
	CurrentPrice float64
	DailyCloses  []*float64
}

// YesterdayClose returns the last entry of the raw close sequence, gap or
// not. A gap at that position is reported as zero.
func (s *Snapshot) YesterdayClose() float64 {
	if len(s.DailyCloses) == 0 || s.DailyCloses[len(s.DailyCloses)-1] == nil {
		return 0
	}
	return *s.DailyCloses[len(s.DailyCloses)-1]
}

// Client issues chart requests against a Yahoo-style finance API.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient constructs a chart client with an explicit request timeout.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// FetchSnapshot requests windowDays of daily candles for symbol and extracts
// the fields the evaluation needs. Only the first chart result and the first
// quote series are consulted. A single failed attempt is surfaced
// immediately; there are no retries.
func (c *Client) FetchSnapshot(ctx context.Context, symbol string, windowDays int) (*Snapshot, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%dd",
		c.baseURL, url.PathEscape(symbol), windowDays)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", apperr.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrTransport, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", apperr.ErrTransport, resp.StatusCode)
	}

	var payload chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", apperr.ErrTransport, err)
	}
	if len(payload.Chart.Result) == 0 {
		return nil, apperr.ErrNoData
	}
	result := payload.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, apperr.ErrNoData
	}

	c.log.Debug().
		Str("symbol", result.Meta.Symbol).
		Str("currency", result.Meta.Currency).
		Int("closes", len(result.Indicators.Quote[0].Close)).
		Msg("chart data fetched")

	return &Snapshot{
		Symbol:       result.Meta.Symbol,
		Currency:     result.Meta.Currency,
		CurrentPrice: result.Meta.RegularMarketPrice,
		DailyCloses:  result.Indicators.Quote[0].Close,
	}, nil
}
