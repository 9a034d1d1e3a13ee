package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	apperrors "pesafolio/internal/errors"
	"pesafolio/internal/logger"
)

const (
	alphaVantageBaseURL = "https://www.alphavantage.co/query"

	// The free tier allows 5 calls per minute, so a single invocation
	// never fetches more than this many symbols. Extra symbols are
	// silently dropped.
	maxSymbolsPerFetch = 5
)

// globalQuoteResponse is the Alpha Vantage GLOBAL_QUOTE payload. Field
// names on the wire are numbered, e.g. "05. price".
type globalQuoteResponse struct {
	GlobalQuote struct {
		Price         string `json:"05. price"`
		ChangePercent string `json:"10. change percent"`
	} `json:"Global Quote"`
}

type cachedQuote struct {
	quote     Quote
	fetchedAt time.Time
}

// priceService fetches quotes from Alpha Vantage, strictly sequentially,
// with a short-lived in-memory cache so repeated dashboard loads do not
// burn through the provider's rate ceiling.
type priceService struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string // overridable for tests
	cacheTTL   time.Duration

	mu    sync.Mutex
	cache map[string]cachedQuote
}

// NewPriceService creates a new PriceServicer backed by Alpha Vantage.
func NewPriceService(apiKey string, cacheTTL time.Duration, httpClient *http.Client) PriceServicer {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &priceService{
		apiKey:     apiKey,
		httpClient: httpClient,
		baseURL:    alphaVantageBaseURL,
		cacheTTL:   cacheTTL,
		cache:      make(map[string]cachedQuote),
	}
}

// FetchPrices resolves quotes for up to five of the given symbols. A
// symbol whose quote cannot be retrieved or parsed is simply absent from
// the result; partial results are a valid success. The only hard failure
// is a missing provider credential.
func (s *priceService) FetchPrices(ctx context.Context, symbols []string) (map[string]Quote, error) {
	if s.apiKey == "" {
		return nil, apperrors.ErrQuoteNotConfigured
	}

	if len(symbols) > maxSymbolsPerFetch {
		symbols = symbols[:maxSymbolsPerFetch]
	}

	prices := make(map[string]Quote)
	for _, symbol := range symbols {
		if quote, ok := s.cached(symbol); ok {
			prices[symbol] = quote
			continue
		}

		quote, err := s.fetchOne(ctx, symbol)
		if err != nil {
			logger.Get().Warnw("quote fetch failed", "symbol", symbol, "error", err)
			continue
		}
		s.store(symbol, quote)
		prices[symbol] = quote
	}

	return prices, nil
}

// fetchOne performs a single GLOBAL_QUOTE call.
func (s *priceService) fetchOne(ctx context.Context, symbol string) (Quote, error) {
	q := url.Values{}
	q.Set("function", "GLOBAL_QUOTE")
	q.Set("symbol", symbol)
	q.Set("apikey", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Quote{}, fmt.Errorf("building request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var payload globalQuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Quote{}, fmt.Errorf("decoding response: %w", err)
	}

	if payload.GlobalQuote.Price == "" {
		return Quote{}, fmt.Errorf("no quote for symbol")
	}

	price, err := strconv.ParseFloat(payload.GlobalQuote.Price, 64)
	if err != nil {
		return Quote{}, fmt.Errorf("parsing price %q: %w", payload.GlobalQuote.Price, err)
	}

	// Change percent arrives as "1.2345%"; a missing value means flat.
	changePercent := 0.0
	if raw := strings.TrimSuffix(payload.GlobalQuote.ChangePercent, "%"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			changePercent = parsed
		}
	}

	return Quote{Price: price, ChangePercent: changePercent}, nil
}

func (s *priceService) cached(symbol string) (Quote, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.cache[symbol]
	if !ok || time.Since(entry.fetchedAt) > s.cacheTTL {
		return Quote{}, false
	}
	return entry.quote, true
}

func (s *priceService) store(symbol string, quote Quote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[symbol] = cachedQuote{quote: quote, fetchedAt: time.Now()}
}
