package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/GabrielBaezJ/travel-brain/internal/cache"
	"github.com/GabrielBaezJ/travel-brain/internal/config"
	"github.com/GabrielBaezJ/travel-brain/internal/dto"
	"github.com/GabrielBaezJ/travel-brain/internal/logger"
	"github.com/GabrielBaezJ/travel-brain/internal/telemetry"
)

var (
	ErrUpstreamUnavailable = errors.New("exchange rate provider unavailable")
	ErrUnknownCurrency     = errors.New("unknown currency code")
	ErrInvalidAmount       = errors.New("amount must be positive")
)

// CurrencyService proxies the Frankfurter exchange-rate API with a TTL
// cache in front of it.
type CurrencyService struct {
	baseURL string
	client  *http.Client
	cache   *cache.Cache
}

// NewCurrencyService creates a new CurrencyService
func NewCurrencyService(cfg config.CurrencyConfig) *CurrencyService {
	return &CurrencyService{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.RequestTimeout},
		cache:   cache.New(cfg.CacheTTL),
	}
}

type frankfurterResponse struct {
	Amount float64            `json:"amount"`
	Base   string             `json:"base"`
	Date   string             `json:"date"`
	Rates  map[string]float64 `json:"rates"`
}

// Rates returns all exchange rates for a base currency, cached for the
// configured TTL.
func (s *CurrencyService) Rates(ctx context.Context, base string) (*dto.RatesResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "CurrencyService.Rates")
	defer span.End()

	base = strings.ToUpper(strings.TrimSpace(base))
	if base == "" {
		return nil, ErrUnknownCurrency
	}

	cacheKey := "rates_" + base
	if cached, ok := s.cache.Get(cacheKey); ok {
		if rates, ok := cached.(*dto.RatesResponse); ok {
			return rates, nil
		}
	}

	upstream, err := s.fetchLatest(ctx, url.Values{"from": {base}})
	if err != nil {
		return nil, err
	}

	rates := &dto.RatesResponse{
		Base:  upstream.Base,
		Date:  upstream.Date,
		Rates: upstream.Rates,
	}
	s.cache.Set(cacheKey, rates)
	return rates, nil
}

// Convert converts an amount between two currencies via the upstream API
func (s *CurrencyService) Convert(ctx context.Context, req *dto.ConvertRequest) (*dto.ConvertResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "CurrencyService.Convert")
	defer span.End()

	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	from := strings.ToUpper(strings.TrimSpace(req.From))
	to := strings.ToUpper(strings.TrimSpace(req.To))
	if from == "" || to == "" {
		return nil, ErrUnknownCurrency
	}
	if from == to {
		return &dto.ConvertResponse{Amount: req.Amount, From: from, To: to, Result: req.Amount}, nil
	}

	upstream, err := s.fetchLatest(ctx, url.Values{
		"amount": {fmt.Sprintf("%g", req.Amount)},
		"from":   {from},
		"to":     {to},
	})
	if err != nil {
		return nil, err
	}

	result, ok := upstream.Rates[to]
	if !ok {
		return nil, ErrUnknownCurrency
	}
	return &dto.ConvertResponse{
		Amount: req.Amount,
		From:   from,
		To:     to,
		Result: result,
		Date:   upstream.Date,
	}, nil
}

func (s *CurrencyService) fetchLatest(ctx context.Context, params url.Values) (*frankfurterResponse, error) {
	endpoint := s.baseURL + "/latest?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Get().Error("exchange rate fetch failed",
			zap.String("url", endpoint),
			zap.Error(err))
		return nil, ErrUpstreamUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusUnprocessableEntity {
		return nil, ErrUnknownCurrency
	}
	if resp.StatusCode != http.StatusOK {
		logger.Get().Error("exchange rate provider returned error",
			zap.String("url", endpoint),
			zap.Int("status", resp.StatusCode))
		return nil, ErrUpstreamUnavailable
	}

	upstream := &frankfurterResponse{}
	if err := json.NewDecoder(resp.Body).Decode(upstream); err != nil {
		return nil, ErrUpstreamUnavailable
	}
	return upstream, nil
}
