// Package fetch retrieves listing pages and groups their product images
// into one entry per physical listing.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gocolly/colly/v2"
)

var ErrNotHTML = errors.New("response is not an html document")

// Entry is one candidate product sighting on a page.
type Entry struct {
	AltText       string
	ContainerText string
	// Text of the container's name heading, empty when it has none.
	Heading   string
	ImageURL  string
	SourceURL string
	// Serialized container markup, identical for every image that belongs
	// to the same physical listing.
	Signature string
}

type Options struct {
	UserAgent string
	// Pause after every request to the upstream site.
	Delay   time.Duration
	Timeout time.Duration
	// Optional on-disk response cache, handy when iterating on parsing.
	CacheDir string
}

type Fetcher struct {
	collector *colly.Collector
}

func New(opts Options) (*Fetcher, error) {
	collectorOpts := []colly.CollectorOption{
		colly.AllowURLRevisit(),
	}
	if opts.UserAgent != "" {
		collectorOpts = append(collectorOpts, colly.UserAgent(opts.UserAgent))
	}
	if opts.CacheDir != "" {
		collectorOpts = append(collectorOpts, colly.CacheDir(opts.CacheDir))
	}

	c := colly.NewCollector(collectorOpts...)
	if opts.Timeout > 0 {
		c.SetRequestTimeout(opts.Timeout)
	}
	err := c.Limit(&colly.LimitRule{
		DomainGlob: "*",
		Delay:      opts.Delay,
	})
	if err != nil {
		return nil, fmt.Errorf("error setting limit rule: %w", err)
	}

	return &Fetcher{collector: c}, nil
}

// Page fetches a single listing page. Any non-success status, transport
// failure or non-HTML body is returned as an error.
func (f *Fetcher) Page(ctx context.Context, pageURL string) ([]Entry, error) {
	c := f.collector.Clone()
	c.Context = ctx

	var entries []Entry
	parsed := false
	c.OnHTML("html", func(e *colly.HTMLElement) {
		parsed = true
		entries = collectEntries(e.DOM, e.Request)
	})
	c.OnRequest(func(r *colly.Request) {
		slog.DebugContext(ctx, "visiting", "url", r.URL.String())
	})

	if err := c.Visit(pageURL); err != nil {
		return nil, fmt.Errorf("error visiting %s: %w", pageURL, err)
	}
	if !parsed {
		return nil, fmt.Errorf("error visiting %s: %w", pageURL, ErrNotHTML)
	}
	return entries, nil
}

// SignatureSet tracks the containers already consumed by one scrape run.
type SignatureSet map[string]struct{}

func NewSignatureSet() SignatureSet {
	return make(SignatureSet)
}

// Add records sig and reports whether it was new.
func (s SignatureSet) Add(sig string) bool {
	if _, ok := s[sig]; ok {
		return false
	}
	s[sig] = struct{}{}
	return true
}

type Pager interface {
	Page(ctx context.Context, pageURL string) ([]Entry, error)
}

// Paginate requests pages 1..maxPages in order and hands each page's
// entries to consume, which returns how many of them it used. The loop ends
// at the first failed page, at the first page where consume used nothing,
// or at the ceiling. It returns the number of pages fetched.
func Paginate(ctx context.Context, p Pager, maxPages int, pageURL func(page int) string, consume func([]Entry) int) int {
	fetched := 0
	for page := 1; page <= maxPages; page++ {
		if ctx.Err() != nil {
			break
		}

		u := pageURL(page)
		entries, err := p.Page(ctx, u)
		fetched++
		if err != nil {
			slog.WarnContext(ctx, "stopping pagination", "url", u, "err", err)
			break
		}

		if consume(entries) == 0 {
			slog.DebugContext(ctx, "no new entries", "url", u)
			break
		}
	}
	return fetched
}
