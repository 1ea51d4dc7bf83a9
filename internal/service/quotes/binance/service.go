package binance

import (
	"context"
	"fmt"
	"time"

	"github.com/KNICEX/price-alert/internal/entity"
	"github.com/KNICEX/price-alert/internal/service/quotes"
	"github.com/adshao/go-binance/v2"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const sourceName = "binance"

var _ quotes.Service = (*Service)(nil)

// Service quotes tracked assets from Binance 24hr ticker statistics.
// The exchange has no fiat INR pairs and no market-cap figure: only USD
// quoting is supported (USDT treated as USD) and MarketCap is zero.
type Service struct {
	cli *binance.Client
	// asset id -> exchange symbol, e.g. bitcoin -> BTCUSDT
	symbols map[string]string
}

func NewService(cli *binance.Client, symbols map[string]string) *Service {
	return &Service{
		cli:     cli,
		symbols: symbols,
	}
}

func (s *Service) GetPrices(ctx context.Context, assets []string, currency entity.Currency) (map[string]entity.Quote, error) {
	if currency != entity.CurrencyUSD {
		return nil, &quotes.FetchError{Source: sourceName, Err: fmt.Errorf("currency %s not quoted on the exchange", currency)}
	}

	known := lo.Filter(assets, func(asset string, _ int) bool {
		_, ok := s.symbols[asset]
		return ok
	})
	if len(known) == 0 {
		return map[string]entity.Quote{}, nil
	}
	pairs := lo.Map(known, func(asset string, _ int) string {
		return s.symbols[asset]
	})

	// 一次批量请求, 与 coingecko 源相同的限流纪律
	stats, err := s.cli.NewListPriceChangeStatsService().Symbols(pairs).Do(ctx)
	if err != nil {
		return nil, &quotes.FetchError{Source: sourceName, Err: err}
	}

	byPair := lo.KeyBy(stats, func(st *binance.PriceChangeStats) string {
		return st.Symbol
	})

	out := make(map[string]entity.Quote, len(known))
	for _, asset := range known {
		st, ok := byPair[s.symbols[asset]]
		if !ok {
			continue
		}
		q, err := s.convertStats(asset, st)
		if err != nil {
			return nil, &quotes.FetchError{Source: sourceName, Err: err}
		}
		out[asset] = q
	}
	return out, nil
}

func (s *Service) convertStats(asset string, st *binance.PriceChangeStats) (entity.Quote, error) {
	price, err := decimal.NewFromString(st.LastPrice)
	if err != nil {
		return entity.Quote{}, fmt.Errorf("parse last price %q: %w", st.LastPrice, err)
	}
	change, err := decimal.NewFromString(st.PriceChangePercent)
	if err != nil {
		return entity.Quote{}, fmt.Errorf("parse change percent %q: %w", st.PriceChangePercent, err)
	}
	volume, err := decimal.NewFromString(st.QuoteVolume)
	if err != nil {
		return entity.Quote{}, fmt.Errorf("parse quote volume %q: %w", st.QuoteVolume, err)
	}
	return entity.Quote{
		Asset:     asset,
		Price:     price,
		Change24h: change,
		MarketCap: decimal.Zero,
		Volume24h: volume,
		Currency:  entity.CurrencyUSD,
	}, nil
}

func (s *Service) GetHistory(ctx context.Context, asset string, currency entity.Currency, days int) ([]quotes.PricePoint, error) {
	if currency != entity.CurrencyUSD {
		return nil, &quotes.FetchError{Source: sourceName, Err: fmt.Errorf("currency %s not quoted on the exchange", currency)}
	}
	pair, ok := s.symbols[asset]
	if !ok {
		return nil, &quotes.FetchError{Source: sourceName, Err: fmt.Errorf("no exchange symbol for asset %q", asset)}
	}

	klines, err := s.cli.NewKlinesService().
		Symbol(pair).
		Interval("1d").
		Limit(days).
		Do(ctx)
	if err != nil {
		return nil, &quotes.FetchError{Source: sourceName, Err: err}
	}

	points := make([]quotes.PricePoint, 0, len(klines))
	for _, k := range klines {
		price, err := decimal.NewFromString(k.Close)
		if err != nil {
			return nil, &quotes.FetchError{Source: sourceName, Err: fmt.Errorf("parse close %q: %w", k.Close, err)}
		}
		points = append(points, quotes.PricePoint{
			Time:  time.UnixMilli(k.CloseTime),
			Price: price,
		})
	}
	return points, nil
}
