package models

// MMarketReport is one trading pair returned by the market provider
// (DexScreener /tokens/v1/{chain}/{mint}). Optional numeric blocks are pointers
// so a missing value is not mistaken for zero.
type MMarketReport struct {
	ChainID     string            `json:"chainId"`
	DexID       string            `json:"dexId"`
	URL         string            `json:"url"`
	PairAddress string            `json:"pairAddress"`
	BaseToken   *MPairToken       `json:"baseToken"`
	QuoteToken  *MPairToken       `json:"quoteToken"`
	PriceNative string            `json:"priceNative"`
	PriceUsd    string            `json:"priceUsd"`
	Liquidity   *MPairLiquidity   `json:"liquidity"`
	Fdv         *float64          `json:"fdv"`
	MarketCap   *float64          `json:"marketCap"`
	Volume      *MPairVolume      `json:"volume"`
	PriceChange *MPairPriceChange `json:"priceChange"`
}

type MPairToken struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

type MPairLiquidity struct {
	USD   *float64 `json:"usd"`
	Base  float64  `json:"base"`
	Quote float64  `json:"quote"`
}

type MPairVolume struct {
	H24 *float64 `json:"h24"`
}

type MPairPriceChange struct {
	H1  *float64 `json:"h1"`
	H24 *float64 `json:"h24"`
}
