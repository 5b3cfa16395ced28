package common

import (
	"testing"
)

func TestParseTicker(t *testing.T) {
	tests := []struct {
		input        string
		wantExchange string
		wantCode     string
		wantString   string
		wantProvider string
	}{
		// Exchange-qualified format with colon separator
		{"NASDAQ:AAPL", "NASDAQ", "AAPL", "NASDAQ:AAPL", "AAPL.US"},
		{"NYSE:IBM", "NYSE", "IBM", "NYSE:IBM", "IBM.US"},
		{"ASX:GNP", "ASX", "GNP", "ASX:GNP", "GNP.AU"},

		// Exchange-qualified format with dot separator
		{"NASDAQ.AAPL", "NASDAQ", "AAPL", "NASDAQ:AAPL", "AAPL.US"},
		{"ASX.GNP", "ASX", "GNP", "ASX:GNP", "GNP.AU"},

		// No exchange prefix - defaults to NASDAQ
		{"AAPL", "NASDAQ", "AAPL", "NASDAQ:AAPL", "AAPL.US"},

		// Case normalization
		{"nasdaq:aapl", "NASDAQ", "AAPL", "NASDAQ:AAPL", "AAPL.US"},
		{"aapl", "NASDAQ", "AAPL", "NASDAQ:AAPL", "AAPL.US"},

		// Whitespace handling
		{"  NASDAQ:AAPL  ", "NASDAQ", "AAPL", "NASDAQ:AAPL", "AAPL.US"},

		// Empty input
		{"", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseTicker(tt.input)

			if result.Exchange != tt.wantExchange {
				t.Errorf("Exchange = %q, want %q", result.Exchange, tt.wantExchange)
			}
			if result.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", result.Code, tt.wantCode)
			}
			if result.String() != tt.wantString {
				t.Errorf("String() = %q, want %q", result.String(), tt.wantString)
			}
			if result.ProviderSymbol() != tt.wantProvider {
				t.Errorf("ProviderSymbol() = %q, want %q", result.ProviderSymbol(), tt.wantProvider)
			}
		})
	}
}

func TestParseTicker_UnknownExchangeSuffix(t *testing.T) {
	result := ParseTicker("BMV:AMXL")
	if result.ProviderSymbol() != "AMXL.US" {
		t.Errorf("ProviderSymbol() = %q, want fallback AMXL.US", result.ProviderSymbol())
	}
}
