package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// Matches standard codes (OP01-001) as well as promos (P-001), whose
// two digit sub-id is absent.
var codeRe = regexp.MustCompile(`(?i)(OP|ST|EB|PRB|P)(\d{0,2})-(\d{3})`)

// ParseCode returns the upper-cased card code embedded in text.
func ParseCode(text string) (string, bool) {
	m := codeRe.FindString(text)
	if m == "" {
		return "", false
	}
	return strings.ToUpper(m), true
}

// DonCode synthesizes a code for a DON!! card listed without one. owner is
// the set code or "SEARCH"; seq starts at 1 and is unique per scrape run.
func DonCode(owner string, seq int) string {
	return fmt.Sprintf("DON-%s-%03d", strings.ToUpper(owner), seq)
}

// StripCode removes the first card code from text and trims the rest.
func StripCode(text string) string {
	loc := codeRe.FindStringIndex(text)
	if loc == nil {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(text[:loc[0]] + text[loc[1]:])
}
