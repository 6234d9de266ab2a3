// internal/pipeline/compose-response/markup.go
package composeresponse

import (
	"regexp"
	"strings"
)

var (
	codeFenceRe  = regexp.MustCompile("(?m)^```[^\n]*$")
	inlineCodeRe = regexp.MustCompile("`([^`]*)`")
	boldRe       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	boldAltRe    = regexp.MustCompile(`__([^_]+)__`)
	italicRe     = regexp.MustCompile(`\*([^*]+)\*`)
	italicAltRe  = regexp.MustCompile(`_([^_]+)_`)
	headingRe    = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	linkRe       = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	listMarkerRe = regexp.MustCompile(`(?m)^\s*(?:[-*+]|\d+\.)\s+`)
	blankLinesRe = regexp.MustCompile(`\n{3,}`)
)

// StripMarkup removes presentation markup so synthesized speech never reads
// literal delimiter tokens. Link text is kept, link targets dropped. The
// operation is idempotent.
func StripMarkup(s string) string {
	s = codeFenceRe.ReplaceAllString(s, "")
	s = inlineCodeRe.ReplaceAllString(s, "$1")
	s = headingRe.ReplaceAllString(s, "")
	s = linkRe.ReplaceAllString(s, "$1")
	s = listMarkerRe.ReplaceAllString(s, "")
	s = boldRe.ReplaceAllString(s, "$1")
	s = boldAltRe.ReplaceAllString(s, "$1")
	s = italicRe.ReplaceAllString(s, "$1")
	s = italicAltRe.ReplaceAllString(s, "$1")
	s = blankLinesRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
