// Package classify maps listing text onto the ranked variant taxonomy.
package classify

import (
	"fmt"
	"strings"
)

type marker struct {
	text  string
	label string
	rank  int
}

// Ordered taxonomy. Within a rank the first match wins, so specific markers
// come before the generic ones they contain.
var taxonomy = []marker{
	{"スーパーパラレル", "Super Parallel (Manga)", 10},
	{"コミック", "Manga Rare (Comic)", 10},
	{"シリアル", "Serial Numbered", 10},
	{"ゴールデン", "Golden Manga", 10},
	{"SPパラレル", "SP Parallel", 9},
	{"手配書", "Wanted Poster (SP)", 9},
	{"SP", "SP Card", 9},
	{"サイン", "Signature / Signed", 9},
	{"書き下ろし", "Original Art / SP", 9},
	{"チャンピオン", "Championship Prize", 9},
	{"優勝", "Winner Prize", 9},
	{"フラッグシップ", "Flagship Battle Prize", 9},
	{"記念品", "Commemorative Promo", 9},
	{"ベスト8", "Top 8 Prize", 9},
	{"3rd Anniversary", "3rd Anniversary Campaign", 9},
	{"Overframe", "Overframe / Parallel", 9},
	{"2nd Anniversary", "2nd Anniversary Set", 8},
	{"Treasure Campaign", "Treasure Campaign", 8},
	{"World Tour", "World Tour Promo", 8},
	{"Let's Start Campaign", "Let's Start Campaign", 8},
	{"Best Selection", "Premium Card Collection Best Selection", 8},
	{"Standard Battle Pack", "Standard Battle Pack", 8},
	{"ONE PIECE FILM RED", "Film Red Admission Gift", 8},
	{"ONE PIECE magazine", "One Piece Magazine", 8},
	{"V Jump", "V Jump Special", 8},
	{"Girls Edition", "Girls Edition", 8},
	{"リーダーパラレル", "Leader Parallel", 8},
	{"P-L", "Leader Parallel", 8},
	{"箔押し", "Foil Stamped", 8},
	{"刻印なし", "No Engraving", 8},
	{"刻印", "Engraved", 8},
	{"パラレル", "Parallel (AA)", 7},
	{"P-SEC", "SEC Parallel", 7},
	{"P-SR", "SR Parallel", 7},
	{"P-R", "Rare Parallel", 7},
	{"P-UC", "Uncommon Parallel", 7},
	{"P-C", "Common Parallel", 7},
	{"PRB", "Premium Booster Parallel", 7},
	{"メモリアル", "Memorial Collection", 6},
	{"プレミアム", "Premium", 6},
	{"ジャンプ", "Jump Promo", 6},
	{"最強", "Saikyo Jump", 6},
	{"映画", "Film Promo", 6},
	{"特典", "Bonus / Benefit", 5},
	{"ドン!!", "DON!! Card", 4},
	{"DON!!", "DON!! Card", 4},
}

const (
	HighValuePrice = 5000
	ParallelPrice  = 1500

	// HighDemandRank is the lowest rank reported as high demand.
	HighDemandRank = 5
)

const (
	BaseLabel      = "Base/Normal"
	HighValueLabel = "High Value Variant (Unknown Type)"
	UnmarkedLabel  = "Parallel (Unmarked)"
)

type Result struct {
	Label      string
	Rank       int
	HighDemand bool
}

// Classify ranks text against the taxonomy. price is in yen and index is
// the zero-based occurrence of the card code within the current scrape.
//
// Every marker is checked: one of lower rank may appear earlier in the text
// than the one that should win.
func Classify(text string, price, index int) Result {
	res := Result{Label: BaseLabel}
	for _, m := range taxonomy {
		if m.rank > res.Rank && strings.Contains(text, m.text) {
			res.Label = m.label
			res.Rank = m.rank
		}
	}

	if res.Rank == 0 {
		switch {
		case price >= HighValuePrice:
			res.Label = HighValueLabel
			res.Rank = 6
		case price >= ParallelPrice:
			res.Label = UnmarkedLabel
			res.Rank = 5
		case index > 0:
			res.Label = fmt.Sprintf("Variant #%d", index+1)
		}
	}

	res.HighDemand = res.Rank >= HighDemandRank
	return res
}
