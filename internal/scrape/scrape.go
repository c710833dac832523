// Package scrape walks the paginated listings of a set or a search query
// and collects every variant seen per card code.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"sohio.net/cardmarket/internal/classify"
	"sohio.net/cardmarket/internal/extract"
	"sohio.net/cardmarket/internal/fetch"
)

var (
	ErrNoSetCode = errors.New("set code is empty")
	ErrNoKeyword = errors.New("search keyword is empty")
)

const (
	// Owner used in synthesized DON!! codes found through search.
	SearchOwner = "SEARCH"

	CommonRarity = "COMMON"
	PromoRarity  = "PROMO"

	DefaultMaxPages = 100
)

// Variant is one observed printing of a card code.
type Variant struct {
	Label      string
	Name       string
	Rarity     string
	Price      int
	Rank       int
	HighDemand bool
	ImageURL   string
	SourceURL  string
}

// Collection maps a card code to its variants in the order they were seen.
type Collection map[string][]Variant

// Merge appends every variant of other to c.
func (c Collection) Merge(other Collection) {
	for code, variants := range other {
		c[code] = append(c[code], variants...)
	}
}

// Len returns the number of variants across all codes.
func (c Collection) Len() int {
	n := 0
	for _, variants := range c {
		n += len(variants)
	}
	return n
}

type Options struct {
	// Set listing root, pages are <BaseURL>/<set>?page=N.
	BaseURL   string
	SearchURL string
	// Hard ceiling on pages per set or keyword.
	MaxPages int
}

type Scraper struct {
	pager fetch.Pager
	opts  Options
}

func New(pager fetch.Pager, opts Options) *Scraper {
	if opts.MaxPages <= 0 {
		opts.MaxPages = DefaultMaxPages
	}
	opts.BaseURL = strings.TrimSuffix(opts.BaseURL, "/")
	return &Scraper{pager: pager, opts: opts}
}

// ScrapeSet collects every listing of a set. A set without listings yields
// an empty collection.
func (s *Scraper) ScrapeSet(ctx context.Context, setCode string) (Collection, error) {
	setCode = strings.ToLower(strings.TrimSpace(setCode))
	if setCode == "" {
		return nil, ErrNoSetCode
	}

	slog.InfoContext(ctx, "scraping set", "set", strings.ToUpper(setCode))
	r := newRun(strings.ToUpper(setCode), CommonRarity)
	pages := fetch.Paginate(ctx, s.pager, s.opts.MaxPages, func(page int) string {
		return fmt.Sprintf("%s/%s?page=%d", s.opts.BaseURL, url.PathEscape(setCode), page)
	}, r.consume)

	slog.InfoContext(ctx, "scraped set", "set", strings.ToUpper(setCode), "pages", pages, "codes", len(r.cards), "variants", r.cards.Len())
	return r.cards, nil
}

// ScrapeSearch collects every listing returned by a keyword search.
func (s *Scraper) ScrapeSearch(ctx context.Context, keyword string) (Collection, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrNoKeyword
	}

	slog.InfoContext(ctx, "searching", "keyword", keyword)
	r := newRun(SearchOwner, PromoRarity)
	pages := fetch.Paginate(ctx, s.pager, s.opts.MaxPages, func(page int) string {
		q := url.Values{}
		q.Set("search_word", keyword)
		q.Set("page", strconv.Itoa(page))
		return s.opts.SearchURL + "?" + q.Encode()
	}, r.consume)

	slog.InfoContext(ctx, "searched", "keyword", keyword, "pages", pages, "codes", len(r.cards), "variants", r.cards.Len())
	return r.cards, nil
}

// run holds the state of a single scrape invocation.
type run struct {
	owner         string
	defaultRarity string

	cards  Collection
	counts map[string]int
	seen   fetch.SignatureSet
	dons   int
}

func newRun(owner, defaultRarity string) *run {
	return &run{
		owner:         owner,
		defaultRarity: defaultRarity,
		cards:         make(Collection),
		counts:        make(map[string]int),
		seen:          fetch.NewSignatureSet(),
	}
}

func (r *run) consume(entries []fetch.Entry) int {
	added := 0
	for _, e := range entries {
		if r.add(e) {
			added++
		}
	}
	return added
}

func (r *run) add(e fetch.Entry) bool {
	code, ok := extract.ParseCode(e.AltText)
	if !ok && !extract.IsDonText(e.AltText) {
		return false
	}
	// hover and thumbnail images of one listing share a container
	if !r.seen.Add(e.Signature) {
		return false
	}
	if !ok {
		r.dons++
		code = extract.DonCode(r.owner, r.dons)
	}

	price := extract.ExtractPrice(e.ContainerText)
	if price == 0 {
		price = extract.ExtractPrice(e.AltText)
	}

	index := r.counts[code]
	r.counts[code]++

	rarity, ok := extract.ExtractRarity(e.AltText)
	if !ok {
		rarity, ok = extract.ExtractRarity(e.ContainerText)
	}
	if !ok {
		rarity = r.defaultRarity
	}

	name := e.Heading
	if name == "" {
		name = extract.StripCode(e.AltText)
	}

	res := classify.Classify(e.AltText+" "+e.ContainerText, price, index)
	r.cards[code] = append(r.cards[code], Variant{
		Label:      res.Label,
		Name:       name,
		Rarity:     rarity,
		Price:      price,
		Rank:       res.Rank,
		HighDemand: res.HighDemand,
		ImageURL:   e.ImageURL,
		SourceURL:  e.SourceURL,
	})
	return true
}
