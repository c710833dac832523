// Package extract pulls prices, rarities and card codes out of listing text.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var priceRe = regexp.MustCompile(`(\d{1,3}(?:,\d{3})*)\s*円`)

// ParsePrice returns the first yen-formatted amount in text. The second
// return value is false when no amount is present or it does not fit an int.
func ParsePrice(text string) (int, bool) {
	m := priceRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	price, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return 0, false
	}
	return price, true
}

// ExtractPrice is ParsePrice with 0 standing in for "no price".
func ExtractPrice(text string) int {
	price, _ := ParsePrice(text)
	return price
}

// Don is the rarity reported for DON!! cards.
const Don = "DON"

// Most specific first, so that "P-SEC" wins over "SEC" and "SR" over "R".
var rarityTokens = []string{
	"P-SEC", "P-SR", "P-R", "P-L",
	"SEC", "SR", "R", "L", "SP", "UC", "C",
}

// IsDonText reports whether text mentions the DON!! card type in either
// latin or katakana spelling. It is a plain substring test, so names that
// contain ドン, such as ドンキホーテ・ドフラミンゴ, also match.
func IsDonText(text string) bool {
	return strings.Contains(text, "DON") || strings.Contains(text, "ドン")
}

// ExtractRarity returns the rarity token found in text.
func ExtractRarity(text string) (string, bool) {
	if IsDonText(text) {
		return Don, true
	}
	for _, token := range rarityTokens {
		if strings.Contains(text, token) {
			return token, true
		}
	}
	return "", false
}
