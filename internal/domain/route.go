package domain

// Route is a priced origin-destination pair with a calendar of seasonal
// price multipliers keyed by ISO date. One route per directed pair.
type Route struct {
	ID               string             `json:"id"`
	Origin           string             `json:"origin"`
	Destination      string             `json:"destination"`
	BasePrice        int64              `json:"basePrice"`
	PriceMultipliers map[string]float64 `json:"priceMultipliers"`
}
