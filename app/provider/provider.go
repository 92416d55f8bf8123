package provider

import (
	"cmp"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lysyi3m/news-hub/app/config"
	"github.com/lysyi3m/news-hub/app/story"
)

const (
	nytEndpoint      = "https://api.nytimes.com/svc/news/v3/content/all/all.json"
	guardianEndpoint = "https://content.guardianapis.com/search"
	newsAPIEndpoint  = "https://newsapi.org/v2/top-headlines"
)

type Options struct {
	Client    *http.Client
	UserAgent string
	Clock     func() time.Time
}

// Provider couples one upstream request with the normalizer for its payload.
type Provider struct {
	name     string
	outlet   string
	url      string
	parser   entryParser
	fetcher  *fetcher
	excerpts *ExcerptExtractor
	clock    func() time.Time
}

func New(pc config.Provider, settings config.Settings, opts Options) (*Provider, error) {
	client := cmp.Or(opts.Client, http.DefaultClient)
	limit := pc.GetLimit(settings)
	key := pc.ResolveAPIKey()

	p := &Provider{
		name:   pc.Name(),
		outlet: pc.Outlet,
		clock:  opts.Clock,
		fetcher: &fetcher{
			client:    client,
			userAgent: opts.UserAgent,
			timeout:   pc.GetTimeout(settings),
		},
	}

	var err error
	switch pc.Kind {
	case config.KindNYT:
		p.parser = &NYT{Outlet: pc.Outlet, Clock: opts.Clock}
		p.url, err = withQuery(cmp.Or(pc.URL, nytEndpoint), url.Values{
			"api-key": {key},
			"limit":   {strconv.Itoa(limit)},
		})
	case config.KindGuardian:
		p.parser = &Guardian{Outlet: pc.Outlet, Clock: opts.Clock}
		p.url, err = withQuery(cmp.Or(pc.URL, guardianEndpoint), url.Values{
			"api-key":     {key},
			"show-fields": {"headline,trailText,thumbnail"},
			"page-size":   {strconv.Itoa(limit)},
		})
	case config.KindNewsAPI:
		p.parser = &NewsAPI{Outlet: pc.Outlet, Clock: opts.Clock}
		p.url, err = withQuery(cmp.Or(pc.URL, newsAPIEndpoint), url.Values{
			"sources": {pc.Source},
			"apiKey":  {key},
		})
	case config.KindRSS:
		p.parser = NewRSS(pc.Outlet, limit, opts.Clock)
		p.url = pc.URL
		if pc.ExtractExcerpt {
			p.excerpts = &ExcerptExtractor{fetcher: p.fetcher}
		}
	default:
		return nil, fmt.Errorf("unknown provider kind: %s", pc.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build request URL for %s: %w", p.name, err)
	}

	return p, nil
}

func withQuery(endpoint string, params url.Values) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	q := u.Query()
	for k, v := range params {
		q[k] = v
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (p *Provider) Name() string   { return p.name }
func (p *Provider) Outlet() string { return p.outlet }

// Fetch downloads and normalizes the provider payload. Every failure wraps
// ErrProviderUnavailable.
func (p *Provider) Fetch(ctx context.Context) ([]story.Story, error) {
	data, err := p.fetcher.get(ctx, p.url, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	entries, err := p.parser.entries(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	if p.excerpts != nil {
		p.excerpts.fill(ctx, entries)
	}

	return buildStories(p.outlet, entries, p.parser.bySection(), now(p.clock)), nil
}
