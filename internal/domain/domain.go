package domain

// TrackedAsset describes one cryptocurrency the service follows. BasePrice
// anchors synthetic fallback data when the upstream provider is unreachable.
type TrackedAsset struct {
	ID        string
	Symbol    string
	Name      string
	BasePrice float64
}

// TrackedAssets is the fixed universe of assets, in catalog order.
var TrackedAssets = []TrackedAsset{
	{ID: "bitcoin", Symbol: "BTC", Name: "Bitcoin", BasePrice: 45000},
	{ID: "ethereum", Symbol: "ETH", Name: "Ethereum", BasePrice: 2500},
	{ID: "cardano", Symbol: "ADA", Name: "Cardano", BasePrice: 0.45},
	{ID: "polkadot", Symbol: "DOT", Name: "Polkadot", BasePrice: 5.5},
	{ID: "solana", Symbol: "SOL", Name: "Solana", BasePrice: 95},
	{ID: "polygon", Symbol: "MATIC", Name: "Polygon", BasePrice: 0.85},
	{ID: "chainlink", Symbol: "LINK", Name: "Chainlink", BasePrice: 12.5},
	{ID: "uniswap", Symbol: "UNI", Name: "Uniswap", BasePrice: 6.2},
}

// CoinGeckoID maps internal symbols to CoinGecko API identifiers.
var CoinGeckoID map[string]string

// CoinGeckoIDToSymbol is the reverse mapping.
var CoinGeckoIDToSymbol map[string]string

// AssetBySymbol indexes the catalog by display symbol.
var AssetBySymbol map[string]TrackedAsset

// SupportedSymbols lists all tracked crypto symbols, in catalog order.
var SupportedSymbols []string

func init() {
	CoinGeckoID = make(map[string]string, len(TrackedAssets))
	CoinGeckoIDToSymbol = make(map[string]string, len(TrackedAssets))
	AssetBySymbol = make(map[string]TrackedAsset, len(TrackedAssets))
	SupportedSymbols = make([]string, 0, len(TrackedAssets))
	for _, asset := range TrackedAssets {
		CoinGeckoID[asset.Symbol] = asset.ID
		CoinGeckoIDToSymbol[asset.ID] = asset.Symbol
		AssetBySymbol[asset.Symbol] = asset
		SupportedSymbols = append(SupportedSymbols, asset.Symbol)
	}
}

// IsSupported reports whether symbol is part of the tracked universe.
func IsSupported(symbol string) bool {
	_, ok := AssetBySymbol[symbol]
	return ok
}
