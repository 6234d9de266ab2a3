package models

// PlaceSource tells where a PlaceDetails record came from. The mock path is
// a designed fallback, not an error, but it must stay distinguishable from a
// genuine live result.
type PlaceSource string

const (
	PlaceSourceLive PlaceSource = "live"
	PlaceSourceMock PlaceSource = "mock"
)

// PlaceSummary is one hit from a place text search.
type PlaceSummary struct {
	PlaceID          string  `json:"placeId"`
	Name             string  `json:"name"`
	Rating           float64 `json:"rating,omitempty"`
	FormattedAddress string  `json:"formattedAddress,omitempty"`
}

// PlaceReview is a single review attached to a place detail record.
type PlaceReview struct {
	AuthorName string `json:"authorName"`
	Text       string `json:"text"`
	Rating     int    `json:"rating,omitempty"`
}

// NearbyPlace is the lite record for places surrounding the main hit.
type NearbyPlace struct {
	Name   string  `json:"name"`
	Rating float64 `json:"rating,omitempty"`
}

// PlaceDetails is the structured place answer attached to a PLACE_SEARCH
// response.
type PlaceDetails struct {
	PlaceID          string        `json:"placeId,omitempty"`
	Name             string        `json:"name"`
	FormattedAddress string        `json:"formattedAddress,omitempty"`
	Rating           float64       `json:"rating,omitempty"`
	OpenNow          *bool         `json:"openNow,omitempty"`
	PriceLevel       int           `json:"priceLevel,omitempty"`
	OpeningHours     []string      `json:"openingHours,omitempty"`
	Reviews          []PlaceReview `json:"reviews,omitempty"`
	NearbyPlaces     []NearbyPlace `json:"nearbyPlaces,omitempty"`
	Source           PlaceSource   `json:"source"`
}
