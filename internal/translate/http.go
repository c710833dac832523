package translate

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// HTTPOptions configures a client for a LibreTranslate compatible service.
type HTTPOptions struct {
	Endpoint string
	APIKey   string
	Source   string
	Target   string
	// Requests per second, unlimited when zero.
	RPS     float64
	Timeout time.Duration
}

type HTTPTranslator struct {
	client  *resty.Client
	limiter *rate.Limiter
	opts    HTTPOptions
}

func NewHTTPTranslator(opts HTTPOptions) *HTTPTranslator {
	if opts.Source == "" {
		opts.Source = "ja"
	}
	if opts.Target == "" {
		opts.Target = "en"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	limit := rate.Inf
	if opts.RPS > 0 {
		limit = rate.Limit(opts.RPS)
	}

	client := resty.New()
	client.SetBaseURL(opts.Endpoint)
	client.SetTimeout(opts.Timeout)
	client.SetHeader("accept", "application/json")

	return &HTTPTranslator{
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
		opts:    opts,
	}
}

type translateRequest struct {
	Q      []string `json:"q"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	Format string   `json:"format"`
	APIKey string   `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText []string `json:"translatedText"`
}

func (t *HTTPTranslator) Translate(ctx context.Context, names []string) ([]string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var out translateResponse
	res, err := t.client.R().
		SetContext(ctx).
		SetBody(translateRequest{
			Q:      names,
			Source: t.opts.Source,
			Target: t.opts.Target,
			Format: "text",
			APIKey: t.opts.APIKey,
		}).
		SetResult(&out).
		Post("/translate")
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("translate: status %d: %s", res.StatusCode(), res.String())
	}
	if len(out.TranslatedText) != len(names) {
		return nil, fmt.Errorf("translate: sent %d names, got %d translations", len(names), len(out.TranslatedText))
	}
	return out.TranslatedText, nil
}
