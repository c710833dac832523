package carddb

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"sohio.net/cardmarket/internal/scrape"
)

const (
	FoilFinish   = "Foil"
	NormalFinish = "Normal"

	defaultVariant = "Normal"
	unknownRarity  = "UNK"

	officialImageFormat = "https://asia-en.onepiece-cardgame.com/images/cardlist/card/%s.png"
)

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Flatten converts a collection into records, codes in ascending order and
// each code's variants ordered by price. The input is not modified.
func Flatten(cards scrape.Collection) []Record {
	codes := make([]string, 0, len(cards))
	for code := range cards {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	records := make([]Record, 0, cards.Len())
	for _, code := range codes {
		variants := slices.Clone(cards[code])
		slices.SortStableFunc(variants, func(a, b scrape.Variant) int {
			return a.Price - b.Price
		})

		setID := SetID(code)
		official := OfficialImageURL(code)
		for i, v := range variants {
			name := v.Label
			if name == "" {
				name = defaultVariant
			}
			rarity := strings.ToUpper(v.Rarity)
			if rarity == "" {
				rarity = unknownRarity
			}
			finish := NormalFinish
			if v.HighDemand {
				finish = FoilFinish
			}

			records = append(records, Record{
				CardCode:         code,
				SetID:            setID,
				BaseName:         v.Name,
				VariantName:      name,
				Rarity:           rarity,
				Price:            v.Price,
				ImageURL:         v.ImageURL,
				OfficialImageURL: official,
				Finish:           finish,
				HighDemand:       v.HighDemand,
				UniqueID:         UniqueID(code, name, i),
			})
		}
	}
	return records
}

// SetID is the token before the first dash, except for synthesized DON!!
// codes (DON-OP01-001) which keep the set they were found in.
func SetID(code string) string {
	parts := strings.Split(code, "-")
	if strings.HasPrefix(code, "DON") && len(parts) > 1 {
		return parts[1]
	}
	return parts[0]
}

func OfficialImageURL(code string) string {
	return fmt.Sprintf(officialImageFormat, code)
}

func Slug(variantName string) string {
	return strings.ToUpper(nonAlnum.ReplaceAllString(variantName, ""))
}

// UniqueID keeps ids legible while the position keeps two variants with
// the same label apart.
func UniqueID(code, variantName string, position int) string {
	return fmt.Sprintf("%s-%s-%d", code, Slug(variantName), position)
}
