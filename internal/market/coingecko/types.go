package coingecko

import "github.com/alanyoungcy/momentumbot/internal/domain"

// APICoin is one entry from the /coins/markets endpoint. Change fields are
// pointers: CoinGecko omits them for markets without enough history, and the
// pipeline must distinguish "unknown" from 0.
type APICoin struct {
	ID           string   `json:"id"`
	Symbol       string   `json:"symbol"`
	Name         string   `json:"name"`
	CurrentPrice float64  `json:"current_price"`
	MarketCap    float64  `json:"market_cap"`
	TotalVolume  float64  `json:"total_volume"`
	Change1h     *float64 `json:"price_change_percentage_1h_in_currency"`
	Change24h    *float64 `json:"price_change_percentage_24h_in_currency"`
	Change7d     *float64 `json:"price_change_percentage_7d_in_currency"`
	Sparkline    *struct {
		Price []float64 `json:"price"`
	} `json:"sparkline_in_7d,omitempty"`
}

// ToDomainSnapshot converts the API DTO into the pipeline's snapshot type.
// Symbols are reported upper-case to match the registry's token keys.
func (c APICoin) ToDomainSnapshot() domain.TokenSnapshot {
	return domain.TokenSnapshot{
		Symbol:       upper(c.Symbol),
		Name:         c.Name,
		CurrentPrice: c.CurrentPrice,
		Volume24h:    c.TotalVolume,
		MarketCap:    c.MarketCap,
		Change1h:     c.Change1h,
		Change24h:    c.Change24h,
		Change7d:     c.Change7d,
	}
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}
