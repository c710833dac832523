package scrape_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"sohio.net/cardmarket/internal/carddb"
	"sohio.net/cardmarket/internal/fetch"
	"sohio.net/cardmarket/internal/scrape"
)

const op01Page1 = `<html><body><div class="row">
  <div class="col-md-4 card_unit">
    <img src="/card/op01/001.jpg" alt="OP01-001 モンキー・D・ルフィ">
    <img src="/card/op01/001-hover.jpg" alt="OP01-001 モンキー・D・ルフィ">
    <h4>モンキー・D・ルフィ</h4>
    <strong>150 円</strong>
  </div>
  <div class="col-md-4 card_unit">
    <img src="/card/op01/001p.jpg" alt="OP01-001 モンキー・D・ルフィ(パラレル)">
    <h4>モンキー・D・ルフィ(パラレル)</h4>
    <strong>2,000 円</strong>
  </div>
  <img src="/banner.png" alt="新弾入荷">
</div></body></html>`

const emptyPage = `<html><body><p>該当する商品はありません</p></body></html>`

const searchPage = `<html><body><div class="row">
  <div class="col-md-4 card_unit">
    <img src="/card/p/001.jpg" alt="P-001 モンキー・D・ルフィ">
    <strong>300 円</strong>
  </div>
  <div class="col-md-4 card_unit">
    <img src="/card/don/gold.jpg" alt="ドン!!カード(ゴールド)">
    <strong>500 円</strong>
  </div>
</div></body></html>`

const op02Card = `<div class="col-md-4 card_unit">
    <img src="/card/op02/001.jpg" alt="OP02-001 エドワード・ニューゲート">
    <strong>400 円</strong>
  </div>`

const op02Page1 = `<html><body><div class="row">
  ` + op02Card + `
  <div class="col-md-4 card_unit">
    <img src="/card/don/op02-a.jpg" alt="ドン!!カード(エース)">
    <strong>500 円</strong>
  </div>
</div></body></html>`

// Page 2 repeats the page 1 card listing.
const op02Page2 = `<html><body><div class="row">
  ` + op02Card + `
  <div class="col-md-4 card_unit">
    <img src="/card/don/op02-b.jpg" alt="ドン!!カード(マルコ)">
    <strong>800 円</strong>
  </div>
</div></body></html>`

type site struct {
	*httptest.Server
	requests atomic.Int32
}

func newSite(t *testing.T) *site {
	s := &site{}
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		http.NotFound(w, r)
	})
	mux.HandleFunc("/sell/opc/s/op01", func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if r.URL.Query().Get("page") == "1" {
			fmt.Fprint(w, op01Page1)
			return
		}
		fmt.Fprint(w, emptyPage)
	})
	mux.HandleFunc("/sell/opc/s/op02", func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, op02Page1)
		case "2":
			fmt.Fprint(w, op02Page2)
		default:
			fmt.Fprint(w, emptyPage)
		}
	})
	mux.HandleFunc("/sell/opc/s/search", func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if r.URL.Query().Get("search_word") == "プロモ" && r.URL.Query().Get("page") == "1" {
			fmt.Fprint(w, searchPage)
			return
		}
		fmt.Fprint(w, emptyPage)
	})
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func newScraper(t *testing.T, s *site) *scrape.Scraper {
	f, err := fetch.New(fetch.Options{})
	require.NoError(t, err)
	return scrape.New(f, scrape.Options{
		BaseURL:   s.URL + "/sell/opc/s",
		SearchURL: s.URL + "/sell/opc/s/search",
		MaxPages:  40,
	})
}

func TestScrapeSetEndToEnd(t *testing.T) {
	s := newSite(t)
	scraper := newScraper(t, s)

	cards, err := scraper.ScrapeSet(context.Background(), "op01")
	require.NoError(t, err)
	require.EqualValues(t, 2, s.requests.Load())
	require.Len(t, cards, 1)
	require.Len(t, cards["OP01-001"], 2)

	records := carddb.Flatten(cards)
	require.Len(t, records, 2)

	base, parallel := records[0], records[1]
	require.Equal(t, "OP01", base.SetID)
	require.Equal(t, "OP01", parallel.SetID)

	require.Equal(t, "Base/Normal", base.VariantName)
	require.Equal(t, 150, base.Price)
	require.False(t, base.HighDemand)
	require.Equal(t, "Normal", base.Finish)
	require.Equal(t, "モンキー・D・ルフィ", base.BaseName)
	require.Equal(t, s.URL+"/card/op01/001.jpg", base.ImageURL)

	require.Equal(t, "Parallel (AA)", parallel.VariantName)
	require.Equal(t, 2000, parallel.Price)
	require.True(t, parallel.HighDemand)
	require.Equal(t, "Foil", parallel.Finish)

	require.Equal(t, 0, cards["OP01-001"][0].Rank)
	require.Equal(t, 7, cards["OP01-001"][1].Rank)
	require.Equal(t, "COMMON", cards["OP01-001"][0].Rarity)
}

func TestScrapeSetDedupsAcrossPagesAndNumbersDonCards(t *testing.T) {
	s := newSite(t)
	scraper := newScraper(t, s)

	cards, err := scraper.ScrapeSet(context.Background(), "op02")
	require.NoError(t, err)
	require.EqualValues(t, 3, s.requests.Load())
	require.Len(t, cards, 3)

	require.Len(t, cards["OP02-001"], 1)
	require.Equal(t, 400, cards["OP02-001"][0].Price)

	first, second := cards["DON-OP02-001"], cards["DON-OP02-002"]
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	require.Equal(t, 500, first[0].Price)
	require.Equal(t, 800, second[0].Price)
	require.Equal(t, "DON", second[0].Rarity)

	records := carddb.Flatten(cards)
	require.Len(t, records, 3)
	for _, r := range records {
		require.Equal(t, "OP02", r.SetID)
	}
}

func TestScrapeSetIsRepeatable(t *testing.T) {
	s := newSite(t)
	scraper := newScraper(t, s)

	first, err := scraper.ScrapeSet(context.Background(), "OP01")
	require.NoError(t, err)
	second, err := scraper.ScrapeSet(context.Background(), "op01")
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, carddb.Flatten(first), carddb.Flatten(second))
}

func TestScrapeUnknownSetIsEmpty(t *testing.T) {
	s := newSite(t)
	scraper := newScraper(t, s)

	cards, err := scraper.ScrapeSet(context.Background(), "op99")
	require.NoError(t, err)
	require.Empty(t, cards)
	require.EqualValues(t, 1, s.requests.Load())
}

func TestScrapeRequiresIdentifier(t *testing.T) {
	s := newSite(t)
	scraper := newScraper(t, s)

	_, err := scraper.ScrapeSet(context.Background(), "  ")
	require.ErrorIs(t, err, scrape.ErrNoSetCode)
	_, err = scraper.ScrapeSearch(context.Background(), "")
	require.ErrorIs(t, err, scrape.ErrNoKeyword)
	require.Zero(t, s.requests.Load())
}

func TestScrapeSearch(t *testing.T) {
	s := newSite(t)
	scraper := newScraper(t, s)

	cards, err := scraper.ScrapeSearch(context.Background(), "プロモ")
	require.NoError(t, err)
	require.Len(t, cards, 2)

	promo := cards["P-001"]
	require.Len(t, promo, 1)
	require.Equal(t, "PROMO", promo[0].Rarity)
	require.Equal(t, "モンキー・D・ルフィ", promo[0].Name)
	require.Equal(t, 300, promo[0].Price)

	don := cards["DON-SEARCH-001"]
	require.Len(t, don, 1)
	require.Equal(t, "DON", don[0].Rarity)
	require.Equal(t, "DON!! Card", don[0].Label)
	require.Equal(t, 4, don[0].Rank)

	records := carddb.Flatten(cards)
	require.Len(t, records, 2)
	require.Equal(t, "SEARCH", records[0].SetID)
	require.Equal(t, "P", records[1].SetID)
}

func TestCollectionMerge(t *testing.T) {
	c := scrape.Collection{"OP01-001": {{Label: "Base/Normal"}}}
	c.Merge(scrape.Collection{
		"OP01-001": {{Label: "Parallel (AA)"}},
		"OP01-002": {{Label: "Base/Normal"}},
	})
	require.Len(t, c, 2)
	require.Equal(t, 3, c.Len())
	require.Equal(t, "Parallel (AA)", c["OP01-001"][1].Label)
}
