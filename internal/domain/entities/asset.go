package entities

// AssetID identifica un activo del conjunto fijo soportado (ids de CoinGecko)
type AssetID string

const (
	Bitcoin  AssetID = "bitcoin"
	Ethereum AssetID = "ethereum"
	Dogecoin AssetID = "dogecoin"
	Solana   AssetID = "solana"
)

// AssetInfo contiene los metadatos de presentación de un activo
type AssetInfo struct {
	ID     AssetID `json:"id"`
	Name   string  `json:"name"`
	Symbol string  `json:"symbol"`
	Icon   string  `json:"icon"`
}

// knownAssets is kept in display order; snapshots are sorted by this order.
var knownAssets = []AssetInfo{
	{ID: Bitcoin, Name: "Bitcoin", Symbol: "BTC", Icon: "₿"},
	{ID: Ethereum, Name: "Ethereum", Symbol: "ETH", Icon: "Ξ"},
	{ID: Dogecoin, Name: "Dogecoin", Symbol: "DOGE", Icon: "Ð"},
	{ID: Solana, Name: "Solana", Symbol: "SOL", Icon: "◎"},
}

var assetIndex map[AssetID]int

func init() {
	assetIndex = make(map[AssetID]int, len(knownAssets))
	for i, info := range knownAssets {
		assetIndex[info.ID] = i
	}
}

// KnownAssets returns the ids of the fixed asset set in enumeration order.
func KnownAssets() []AssetID {
	ids := make([]AssetID, len(knownAssets))
	for i, info := range knownAssets {
		ids[i] = info.ID
	}
	return ids
}

// LookupAsset retorna los metadatos de un activo conocido
func LookupAsset(id AssetID) (AssetInfo, bool) {
	idx, ok := assetIndex[id]
	if !ok {
		return AssetInfo{}, false
	}
	return knownAssets[idx], true
}

// IsKnown reports whether id belongs to the fixed asset set.
func (id AssetID) IsKnown() bool {
	_, ok := assetIndex[id]
	return ok
}

// order returns the enumeration position of a known id.
func (id AssetID) order() int {
	return assetIndex[id]
}
