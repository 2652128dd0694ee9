package repository

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang-autoprofit/config"
	"golang-autoprofit/pkg/cache"
	"golang-autoprofit/pkg/common"
	"golang-autoprofit/pkg/httpclient"
	"golang-autoprofit/pkg/logger"

	"golang.org/x/time/rate"
)

// PriceFeedRepository fetches last-traded prices from an external quote
// API. It satisfies contract.PriceFeed.
type PriceFeedRepository interface {
	LastPrice(ctx context.Context, symbol string) (float64, error)
}

type tickerPriceResponse struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

type priceFeedRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	log            *logger.Logger
	inmemoryCache  cache.Cache
	requestLimiter *rate.Limiter
}

func NewPriceFeedRepository(cfg *config.Config, inmemoryCache cache.Cache, log *logger.Logger) PriceFeedRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.PriceFeed.MaxRequestPerMin)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &priceFeedRepository{
		httpClient:     httpclient.New(cfg.PriceFeed.BaseURL, cfg.PriceFeed.Timeout, ""),
		cfg:            cfg,
		log:            log,
		inmemoryCache:  inmemoryCache,
		requestLimiter: requestLimiter,
	}
}

func (r *priceFeedRepository) LastPrice(ctx context.Context, symbol string) (float64, error) {
	// When the request budget is exhausted, a slightly stale cached price
	// beats blocking a whole monitoring round.
	if !r.requestLimiter.Allow() {
		if price, ok := cache.GetFromCache[float64](fmt.Sprintf(common.KEY_LAST_PRICE, symbol)); ok {
			return price, nil
		}
		if err := r.requestLimiter.Wait(ctx); err != nil {
			return 0, err
		}
	}

	endpoint := "/api/v3/ticker/price"
	queryParams := map[string]string{
		"symbol": symbol,
	}

	var result tickerPriceResponse
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, nil, &result)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch last price for %s: %w", symbol, err)
	}

	if resp.StatusCode != http.StatusOK {
		r.log.Error("Price feed returned Non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("symbol", symbol),
			logger.StringField("body", string(resp.Body)))
		return 0, fmt.Errorf("price feed returned status: %d", resp.StatusCode)
	}

	price, err := strconv.ParseFloat(result.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q for %s: %w", result.Price, symbol, err)
	}

	r.inmemoryCache.Set(fmt.Sprintf(common.KEY_LAST_PRICE, symbol), price, r.cfg.Cache.DefaultExpiration)

	return price, nil
}
