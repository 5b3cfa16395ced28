// Package common provides shared utilities across the application.
package common

import (
	"strings"
)

// Ticker represents a parsed exchange-qualified ticker.
// Format: EXCHANGE:CODE (e.g., "NASDAQ:AAPL", "ASX:GNP")
type Ticker struct {
	// Exchange is the exchange code (e.g., "NASDAQ", "NYSE", "ASX")
	Exchange string
	// Code is the stock/security code (e.g., "AAPL", "GNP")
	Code string
	// Raw is the original ticker string
	Raw string
}

// ExchangeToSuffix maps exchange codes to provider API suffixes.
var ExchangeToSuffix = map[string]string{
	"NYSE":   ".US",
	"NASDAQ": ".US",
	"ASX":    ".AU",
	"LSE":    ".LSE",
	"TSX":    ".TO",
	"XETRA":  ".XETRA",
}

// DefaultExchange is the exchange assumed when a ticker carries no prefix.
var DefaultExchange = "NASDAQ"

// ParseTicker parses an exchange-qualified ticker string.
// Supports formats:
//   - "NASDAQ:AAPL" -> Exchange="NASDAQ", Code="AAPL" (colon separator)
//   - "NASDAQ.AAPL" -> Exchange="NASDAQ", Code="AAPL" (dot separator)
//   - "AAPL" -> Exchange=DefaultExchange, Code="AAPL"
//   - "aapl" -> Exchange=DefaultExchange, Code="AAPL" (normalized to uppercase)
//
// The provider uses CODE.SUFFIX (e.g., "AAPL.US"); use ProviderSymbol() to
// convert to that format.
func ParseTicker(ticker string) Ticker {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return Ticker{}
	}

	if idx := strings.Index(ticker, ":"); idx > 0 {
		return Ticker{
			Exchange: strings.ToUpper(ticker[:idx]),
			Code:     strings.ToUpper(ticker[idx+1:]),
			Raw:      ticker,
		}
	}

	// Dot separator only matches known exchanges, so codes containing dots
	// are not misparsed.
	if idx := strings.Index(ticker, "."); idx > 0 {
		possibleExchange := strings.ToUpper(ticker[:idx])
		if _, ok := ExchangeToSuffix[possibleExchange]; ok {
			return Ticker{
				Exchange: possibleExchange,
				Code:     strings.ToUpper(ticker[idx+1:]),
				Raw:      ticker,
			}
		}
	}

	return Ticker{
		Exchange: DefaultExchange,
		Code:     strings.ToUpper(ticker),
		Raw:      ticker,
	}
}

// String returns the full exchange-qualified ticker string.
func (t Ticker) String() string {
	if t.Exchange == "" || t.Code == "" {
		return t.Code
	}
	return t.Exchange + ":" + t.Code
}

// ProviderSymbol returns the market-data provider symbol format.
// Example: "NASDAQ:AAPL" -> "AAPL.US"
func (t Ticker) ProviderSymbol() string {
	if t.Code == "" {
		return ""
	}
	suffix, ok := ExchangeToSuffix[t.Exchange]
	if !ok {
		suffix = ".US"
	}
	return t.Code + suffix
}
