package dexscreener

// tokenResponse is the raw DexScreener token lookup response.
type tokenResponse struct {
	Pairs []pairData `json:"pairs"`
}

// pairData is one trading pair as returned by DexScreener.
type pairData struct {
	PairAddress string `json:"pairAddress"`
	BaseToken   struct {
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
	} `json:"baseToken"`
	PriceUsd string `json:"priceUsd"`
	Volume   struct {
		H24 float64 `json:"h24"`
	} `json:"volume"`
	Liquidity struct {
		USD float64 `json:"usd"`
	} `json:"liquidity"`
}
