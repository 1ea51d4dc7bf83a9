package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KNICEX/price-alert/internal/entity"
	"github.com/KNICEX/price-alert/internal/service/quotes"
	"github.com/shopspring/decimal"
)

const DefaultBaseURL = "https://api.coingecko.com/api/v3"

const sourceName = "coingecko"

var _ quotes.Service = (*Service)(nil)

// Service 行情数据服务
type Service struct {
	cli     *http.Client
	baseURL string
}

func NewService(cli *http.Client, baseURL string) *Service {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Service{
		cli:     cli,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// GetPrices fetches all tracked assets in a single /simple/price call.
func (s *Service) GetPrices(ctx context.Context, assets []string, currency entity.Currency) (map[string]entity.Quote, error) {
	params := url.Values{}
	params.Set("ids", strings.Join(assets, ","))
	params.Set("vs_currencies", currency.Code())
	params.Set("include_market_cap", "true")
	params.Set("include_24hr_vol", "true")
	params.Set("include_24hr_change", "true")

	var raw map[string]map[string]float64
	if err := s.getJSON(ctx, "/simple/price", params, &raw); err != nil {
		return nil, err
	}

	out := make(map[string]entity.Quote, len(raw))
	for asset, fields := range raw {
		out[asset] = entity.Quote{
			Asset:     asset,
			Price:     decimal.NewFromFloat(fields[currency.Code()]),
			Change24h: decimal.NewFromFloat(fields[currency.Code()+"_24h_change"]),
			MarketCap: decimal.NewFromFloat(fields[currency.Code()+"_market_cap"]),
			Volume24h: decimal.NewFromFloat(fields[currency.Code()+"_24h_vol"]),
			Currency:  currency,
		}
	}
	return out, nil
}

func (s *Service) GetHistory(ctx context.Context, asset string, currency entity.Currency, days int) ([]quotes.PricePoint, error) {
	params := url.Values{}
	params.Set("vs_currency", currency.Code())
	params.Set("days", fmt.Sprintf("%d", days))

	var raw struct {
		Prices [][2]float64 `json:"prices"`
	}
	if err := s.getJSON(ctx, "/coins/"+url.PathEscape(asset)+"/market_chart", params, &raw); err != nil {
		return nil, err
	}

	points := make([]quotes.PricePoint, 0, len(raw.Prices))
	for _, p := range raw.Prices {
		points = append(points, quotes.PricePoint{
			Time:  time.UnixMilli(int64(p[0])),
			Price: decimal.NewFromFloat(p[1]),
		})
	}
	return points, nil
}

func (s *Service) getJSON(ctx context.Context, path string, params url.Values, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return &quotes.FetchError{Source: sourceName, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.cli.Do(req)
	if err != nil {
		return &quotes.FetchError{Source: sourceName, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &quotes.FetchError{Source: sourceName, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	if err = json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &quotes.FetchError{Source: sourceName, Err: fmt.Errorf("decode body: %w", err)}
	}
	return nil
}
