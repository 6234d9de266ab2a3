// internal/pipeline/route-intent/mock.go
package routeintent

import (
	"fmt"

	"eum-chatbot/internal/models"
)

// mockPlace synthesizes a stable-format place record keyed by the extracted
// location and keywords. Names are randomized within the per-location table
// but every structural field is deterministic.
func (h *Handler) mockPlace(entities *models.ExtractedInfo) *models.PlaceDetails {
	names := mockGenericNames
	if table, ok := mockNameTables[entities.Location]; ok {
		names = table
	}

	category := mockCategory(entities.Keywords)
	base := names[h.randIntn(len(names))]
	openNow := true

	place := &models.PlaceDetails{
		Name:             fmt.Sprintf("%s %s", base, category),
		FormattedAddress: mockAddress(entities.Location),
		Rating:           mockRating,
		OpenNow:          &openNow,
		OpeningHours:     []string{mockOpeningHours},
		Source:           models.PlaceSourceMock,
	}

	for _, review := range mockReviews {
		place.Reviews = append(place.Reviews, models.PlaceReview{
			AuthorName: review.Author,
			Text:       review.Text,
			Rating:     review.Rating,
		})
	}

	// Distinct nearby names: permute the table and take the first entries.
	nearbyCount := mockNearbyMin + h.randIntn(mockNearbySpread)
	for i, idx := range h.randPerm(len(names)) {
		if i >= nearbyCount {
			break
		}
		place.NearbyPlaces = append(place.NearbyPlaces, models.NearbyPlace{
			Name:   names[idx],
			Rating: 4.0 + float64(i)*0.1,
		})
	}

	return place
}

// mockCategory maps the first matching cuisine keyword to a venue category.
func mockCategory(keywords []string) string {
	for _, entry := range mockCategories {
		for _, kw := range keywords {
			if kw == entry.Keyword {
				return entry.Category
			}
		}
	}
	return "맛집"
}

func mockAddress(location string) string {
	if location == "" {
		return "서울특별시"
	}
	return fmt.Sprintf("서울특별시 %s 인근", location)
}
