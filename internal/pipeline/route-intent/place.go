// internal/pipeline/route-intent/place.go
package routeintent

import (
	"context"
	"fmt"
	"strings"

	"eum-chatbot/internal/common/metrics"
	"eum-chatbot/internal/models"
	extractentities "eum-chatbot/internal/pipeline/extract-entities"
)

const maxNearbyFromSearch = 5

// handlePlaceSearch queries the live search collaborator and falls back to
// the deterministic mock generator when the collaborator is unavailable,
// fails, or returns nothing. The two paths stay distinguishable through the
// Source field on the returned place.
func (h *Handler) handlePlaceSearch(ctx context.Context, entities *models.ExtractedInfo) *Result {
	query := extractentities.SearchQuery(entities)

	place := h.livePlace(ctx, query)
	if place == nil {
		place = h.mockPlace(entities)
	}

	return &Result{
		Message: formatPlaceMessage(place),
		Place:   place,
	}
}

func (h *Handler) livePlace(ctx context.Context, query string) *models.PlaceDetails {
	if h.places == nil || !h.places.Configured() {
		return nil
	}

	summaries, err := h.places.SearchText(ctx, query)
	if err != nil {
		metrics.CollaboratorFailures.WithLabelValues("places").Inc()
		h.logger.Warn("place search failed, generating mock results", map[string]interface{}{
			"query": query,
			"error": err.Error(),
		})
		return nil
	}
	if len(summaries) == 0 {
		h.logger.Info("place search returned no results, generating mock results", map[string]interface{}{
			"query": query,
		})
		return nil
	}

	first := summaries[0]
	place, err := h.places.Details(ctx, first.PlaceID)
	if err != nil {
		metrics.CollaboratorFailures.WithLabelValues("places").Inc()
		h.logger.Warn("place details failed, using search summary", map[string]interface{}{
			"placeId": first.PlaceID,
			"error":   err.Error(),
		})
		place = &models.PlaceDetails{
			PlaceID:          first.PlaceID,
			Name:             first.Name,
			FormattedAddress: first.FormattedAddress,
			Rating:           first.Rating,
			Source:           models.PlaceSourceLive,
		}
	}

	for i, s := range summaries[1:] {
		if i >= maxNearbyFromSearch {
			break
		}
		place.NearbyPlaces = append(place.NearbyPlaces, models.NearbyPlace{
			Name:   s.Name,
			Rating: s.Rating,
		})
	}

	return place
}

// formatPlaceMessage renders the place record as the user-facing Korean
// message.
func formatPlaceMessage(place *models.PlaceDetails) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("**%s**\n\n", place.Name))

	if place.FormattedAddress != "" {
		sb.WriteString(fmt.Sprintf("📍 주소: %s\n", place.FormattedAddress))
	}
	if place.Rating > 0 {
		sb.WriteString(fmt.Sprintf("⭐ 평점: %.1f\n", place.Rating))
	}
	if place.OpenNow != nil {
		if *place.OpenNow {
			sb.WriteString("🕒 현재 영업 중\n")
		} else {
			sb.WriteString("🕒 현재 영업 종료\n")
		}
	}
	if len(place.OpeningHours) > 0 {
		sb.WriteString("🕒 영업시간:\n")
		for _, line := range place.OpeningHours {
			sb.WriteString(fmt.Sprintf("- %s\n", line))
		}
	}
	if len(place.Reviews) > 0 {
		review := place.Reviews[0]
		sb.WriteString(fmt.Sprintf("💬 리뷰: %s\n", review.Text))
	}
	if len(place.NearbyPlaces) > 0 {
		sb.WriteString("\n🔍 주변 추천 장소:\n")
		for _, nearby := range place.NearbyPlaces {
			if nearby.Rating > 0 {
				sb.WriteString(fmt.Sprintf("- %s (⭐ %.1f)\n", nearby.Name, nearby.Rating))
			} else {
				sb.WriteString(fmt.Sprintf("- %s\n", nearby.Name))
			}
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}
