package models

import "strings"

// Intent is the closed classification of what the user wants. Downstream
// dispatch assumes this set is exhaustive, so every external value passes
// through ParseIntent before any branching.
type Intent string

const (
	IntentPlaceSearch        Intent = "PLACE_SEARCH"
	IntentInformationRequest Intent = "INFORMATION_REQUEST"
	IntentGeneralChat        Intent = "GENERAL_CHAT"
	IntentUnknown            Intent = "UNKNOWN"
)

// ParseIntent normalizes a raw classifier reply into the closed intent set.
// It is total: any value outside the four tokens maps to IntentUnknown.
func ParseIntent(raw string) Intent {
	switch Intent(strings.ToUpper(strings.TrimSpace(raw))) {
	case IntentPlaceSearch:
		return IntentPlaceSearch
	case IntentInformationRequest:
		return IntentInformationRequest
	case IntentGeneralChat:
		return IntentGeneralChat
	default:
		return IntentUnknown
	}
}
