package entity

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnsupportedCurrency = errors.New("unsupported currency")

// Currency 计价货币
// One currency is active per refresh cycle; every threshold and price in
// a cycle is compared in that currency.
type Currency string

const (
	CurrencyINR Currency = "inr"
	CurrencyUSD Currency = "usd"
)

func ParseCurrency(s string) (Currency, error) {
	switch Currency(strings.ToLower(s)) {
	case CurrencyINR:
		return CurrencyINR, nil
	case CurrencyUSD:
		return CurrencyUSD, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCurrency, s)
	}
}

func (c Currency) Symbol() string {
	if c == CurrencyINR {
		return "₹"
	}
	return "$"
}

func (c Currency) Code() string {
	return string(c)
}

func (c Currency) Upper() string {
	return strings.ToUpper(string(c))
}
