package keywords

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Client fetches keyword hierarchies from a remote keyword endpoint speaking
// the {"data": [tree...]} wire format.
type Client struct {
	opts ClientOptions
}

// ClientOptions configures a keyword client.
type ClientOptions struct {
	// BaseURL is the endpoint root, e.g. "https://example.test/api/keywords".
	BaseURL string

	// HTTPClient overrides the transport. Defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// ClientOptionFn mutates ClientOptions.
type ClientOptionFn func(*ClientOptions)

// WithBaseURL sets the endpoint root.
func WithBaseURL(base string) ClientOptionFn {
	return func(o *ClientOptions) {
		o.BaseURL = base
	}
}

// WithHTTPClient overrides the transport.
func WithHTTPClient(client *http.Client) ClientOptionFn {
	return func(o *ClientOptions) {
		o.HTTPClient = client
	}
}

// NewClient constructs a keyword client.
func NewClient(fns ...ClientOptionFn) (*Client, error) {
	opts := ClientOptions{}
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, errors.New("keywords: base url is required")
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	return &Client{opts: opts}, nil
}

var _ Service = (*Client)(nil)

type keywordsResponse struct {
	Data []Node `json:"data"`
}

// FetchKeywords requests the hierarchy for a vocabulary and flattens it into
// paths.
func (c *Client) FetchKeywords(ctx context.Context, vocabulary string) ([]Path, error) {
	name := strings.TrimSpace(vocabulary)
	if name == "" {
		return nil, errors.New("keywords: vocabulary name is required")
	}

	endpoint := strings.TrimRight(c.opts.BaseURL, "/") + "/" + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("keywords: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("keywords: fetch %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("keywords: fetch %s: Error code: %d", name, resp.StatusCode)
	}

	var payload keywordsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("keywords: decode %s response: %w", name, err)
	}
	return Flatten(payload.Data), nil
}
