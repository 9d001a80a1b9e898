package model

import (
	"fmt"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Market cap magnitude thresholds in USD
const (
	Thousand = 1e3
	Million  = 1e6
	Billion  = 1e9
	Trillion = 1e12
)

// usdPrinter groups thousands in dollar amounts ("1,234,567.89")
var usdPrinter = message.NewPrinter(language.English)

// Coin represents one tracked cryptocurrency as reported by the backend.
// Field names follow the backend JSON contract exactly; fallback payloads
// may omit ID, Change7d and Logo.
type Coin struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`              // current price in USD
	Change24h float64 `json:"percent_change_24h"` // 24h percent change
	Change7d  float64 `json:"percent_change_7d"`  // 7d percent change
	MarketCap float64 `json:"market_cap"`         // market capitalization in USD
	IsDefault bool    `json:"is_default"`         // pinned by the backend, cannot be removed
	Logo      string  `json:"logo"`               // logo image URL, may be empty
}

// SortDefaultFirst reorders coins so every default-flagged coin precedes
// every non-default coin. The sort is stable: relative order within each
// group is exactly the order the backend sent.
func SortDefaultFirst(coins []Coin) {
	sort.SliceStable(coins, func(i, j int) bool {
		return coins[i].IsDefault && !coins[j].IsDefault
	})
}

// FormattedPrice returns the price as a grouped USD string. Sub-dollar
// prices keep extra decimals so small-cap coins do not render as $0.00.
func (c *Coin) FormattedPrice() string {
	switch {
	case c.Price >= 1:
		return usdPrinter.Sprintf("$%.2f", c.Price)
	case c.Price >= 0.01:
		return fmt.Sprintf("$%.4f", c.Price)
	default:
		return fmt.Sprintf("$%.6f", c.Price)
	}
}

// FormattedMarketCap returns the market cap compacted with a K/M/B/T suffix
func (c *Coin) FormattedMarketCap() string {
	cap := c.MarketCap
	switch {
	case cap >= Trillion:
		return fmt.Sprintf("$%.2fT", cap/Trillion)
	case cap >= Billion:
		return fmt.Sprintf("$%.2fB", cap/Billion)
	case cap >= Million:
		return fmt.Sprintf("$%.2fM", cap/Million)
	case cap >= Thousand:
		return fmt.Sprintf("$%.2fK", cap/Thousand)
	default:
		return fmt.Sprintf("$%.2f", cap)
	}
}

// FormattedChange24h returns the 24h percent change with an explicit sign
func (c *Coin) FormattedChange24h() string {
	return formatPercent(c.Change24h)
}

// FormattedChange7d returns the 7d percent change with an explicit sign
func (c *Coin) FormattedChange7d() string {
	return formatPercent(c.Change7d)
}

func formatPercent(value float64) string {
	return fmt.Sprintf("%+.2f%%", value)
}
