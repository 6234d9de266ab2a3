// Package extractentities derives a location and topical keywords from a
// Korean utterance using deterministic pattern tables, plus a reasoner-refined
// search query. Extraction is best-effort and never fails the request.
package extractentities

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"eum-chatbot/internal/models"
)

const StageName = "extract-entities"

// DefaultSearchQuery is used when neither a location nor any keyword was
// extracted.
const DefaultSearchQuery = "맛집 추천"

const rewritePromptTemplate = `다음 사용자 입력을 장소 검색에 적합한 검색어로 정리해주세요.
불필요한 조사와 감탄사는 제거하고 핵심 키워드만 남기세요.
다른 설명 없이 정리된 검색어만 한 줄로 출력하세요.

입력: %s`

// Reasoner is the language-reasoning collaborator used for query rewriting.
type Reasoner interface {
	Complete(ctx context.Context, prompt string) (string, error)
	IsConfigured() bool
}

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

var (
	allowedCharsRe  = regexp.MustCompile(`[가-힣a-zA-Z0-9\s]+`)
	suffixPrimaryRe = regexp.MustCompile(`([가-힣]+(?:역|구|동|가|로|길|대로))`)
	suffixRegionRe  = regexp.MustCompile(`([가-힣]+(?:시|군))`)
)

type Handler struct {
	config   *Config
	reasoner Reasoner
	logger   Logger
}

func NewHandler(config *Config, reasoner Reasoner, log Logger) *Handler {
	return &Handler{
		config:   config,
		reasoner: reasoner,
		logger: log.With(map[string]interface{}{
			"stage": StageName,
		}),
	}
}

// Extract returns the best-effort entities for the utterance. The processed
// query falls back to the original text whenever the reasoner is absent or
// fails.
func (h *Handler) Extract(ctx context.Context, text string) *models.ExtractedInfo {
	info := &models.ExtractedInfo{
		Location:       h.extractLocation(text),
		Keywords:       h.extractKeywords(text),
		OriginalQuery:  text,
		ProcessedQuery: text,
	}

	if h.reasoner != nil && h.reasoner.IsConfigured() {
		rewritten, err := h.reasoner.Complete(ctx, fmt.Sprintf(rewritePromptTemplate, text))
		if err != nil {
			h.logger.Warn("query rewrite failed, using original text", map[string]interface{}{
				"error": err.Error(),
			})
		} else if strings.TrimSpace(rewritten) != "" {
			info.ProcessedQuery = strings.TrimSpace(rewritten)
		}
	}

	return info
}

// extractLocation matches in priority order: known landmarks, a windowed
// token around a location suffix, then regex fallbacks for administrative
// unit endings.
func (h *Handler) extractLocation(text string) string {
	lower := strings.ToLower(text)
	for _, landmark := range h.config.Landmarks {
		if strings.Contains(lower, strings.ToLower(landmark)) {
			return landmark
		}
	}

	if loc := h.windowedLocation(text); loc != "" {
		return loc
	}

	if m := suffixPrimaryRe.FindString(text); m != "" {
		return m
	}
	if m := suffixRegionRe.FindString(text); m != "" {
		return m
	}

	return ""
}

// windowedLocation takes the 10 runes on each side of a suffix keyword,
// keeps only Korean/alphanumeric/space characters, and returns the token
// containing the suffix.
func (h *Handler) windowedLocation(text string) string {
	runes := []rune(text)
	for _, suffix := range h.config.LocationSuffixes {
		idx := runeIndex(runes, []rune(suffix))
		if idx < 0 {
			continue
		}

		start := idx - 10
		if start < 0 {
			start = 0
		}
		end := idx + len([]rune(suffix)) + 10
		if end > len(runes) {
			end = len(runes)
		}

		window := allowedCharsRe.FindString(string(runes[start:end]))
		for _, field := range strings.Fields(window) {
			if strings.Contains(field, suffix) && len([]rune(field)) > len([]rune(suffix)) {
				return field
			}
		}
	}
	return ""
}

// extractKeywords unions containment hits from the food and qualifier
// vocabularies, deduplicated and sorted for deterministic output.
func (h *Handler) extractKeywords(text string) []string {
	seen := make(map[string]bool)
	for _, kw := range h.config.FoodKeywords {
		if strings.Contains(text, kw) {
			seen[kw] = true
		}
	}
	for _, kw := range h.config.QualifierKeywords {
		if strings.Contains(text, kw) {
			seen[kw] = true
		}
	}

	keywords := make([]string, 0, len(seen))
	for kw := range seen {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)
	return keywords
}

// SearchQuery joins the extracted location and keywords into a place search
// string, falling back to the default phrase when both are empty.
func SearchQuery(info *models.ExtractedInfo) string {
	parts := make([]string, 0, len(info.Keywords)+1)
	if info.Location != "" {
		parts = append(parts, info.Location)
	}
	parts = append(parts, info.Keywords...)

	if len(parts) == 0 {
		return DefaultSearchQuery
	}
	return strings.Join(parts, " ")
}

func runeIndex(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
