package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractPrice(t *testing.T) {
	cases := []struct {
		text   string
		expect int
	}{
		{"12,500円", 12500},
		{"no price here", 0},
		{"販売価格 150 円 在庫 3", 150},
		{"1,200,000円", 1200000},
		{"在庫あり 980円 / 1,980円", 980},
		{"1500 yen", 0},
	}
	for _, c := range cases {
		require.Equal(t, c.expect, ExtractPrice(c.text), c.text)
	}
}

func TestParsePriceDistinguishesMissing(t *testing.T) {
	price, ok := ParsePrice("0円")
	require.True(t, ok)
	require.Zero(t, price)

	_, ok = ParsePrice("SOLD OUT")
	require.False(t, ok)
}

func TestExtractRarity(t *testing.T) {
	cases := []struct {
		text   string
		expect string
		found  bool
	}{
		{"OP01-120 SEC シャンクス", "SEC", true},
		{"OP01-120 P-SEC シャンクス", "P-SEC", true},
		{"OP05-119 SR", "SR", true},
		{"ドン!!カード", Don, true},
		{"DON!! card (gold)", Don, true},
		{"OP01-006 UC", "UC", true},
		{"ゾロ 100円", "", false},
	}
	for _, c := range cases {
		rarity, ok := ExtractRarity(c.text)
		require.Equal(t, c.found, ok, c.text)
		require.Equal(t, c.expect, rarity, c.text)
	}
}

func TestIsDonTextMatchesSubstring(t *testing.T) {
	require.True(t, IsDonText("ドン!!カード"))
	require.True(t, IsDonText("DON!!"))
	// names containing the katakana also count
	require.True(t, IsDonText("OP01-073 ドンキホーテ・ドフラミンゴ"))
	rarity, _ := ExtractRarity("OP01-073 SR ドンキホーテ・ドフラミンゴ")
	require.Equal(t, Don, rarity)

	require.False(t, IsDonText("OP01-001 モンキー・D・ルフィ"))
}

func TestParseCode(t *testing.T) {
	cases := []struct {
		text   string
		expect string
		found  bool
	}{
		{"op01-001 モンキー・D・ルフィ", "OP01-001", true},
		{"ST10-002 トラファルガー・ロー", "ST10-002", true},
		{"PRB01-004 パラレル", "PRB01-004", true},
		{"P-043 プロモ", "P-043", true},
		{"eb01-061", "EB01-061", true},
		{"ドン!!カード", "", false},
	}
	for _, c := range cases {
		code, ok := ParseCode(c.text)
		require.Equal(t, c.found, ok, c.text)
		require.Equal(t, c.expect, code, c.text)
	}
}

func TestDonCode(t *testing.T) {
	require.Equal(t, "DON-OP01-001", DonCode("op01", 1))
	require.Equal(t, "DON-SEARCH-012", DonCode("SEARCH", 12))
}

func TestStripCode(t *testing.T) {
	require.Equal(t, "モンキー・D・ルフィ", StripCode("op01-001 モンキー・D・ルフィ"))
	require.Equal(t, "ドン!!カード", StripCode(" ドン!!カード "))
}
