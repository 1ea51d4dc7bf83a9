package entity

import (
	"github.com/shopspring/decimal"
)

// Quote 单个资产的时点行情快照
// Produced fresh on every poll and superseded entirely by the next one,
// nothing here is persisted.
type Quote struct {
	Asset     string
	Price     decimal.Decimal
	Change24h decimal.Decimal // percent, signed
	MarketCap decimal.Decimal
	Volume24h decimal.Decimal
	Currency  Currency
}
