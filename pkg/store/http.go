package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/goliatone/go-draftforms/pkg/draft"
)

// HTTPStore talks to a remote draft API over HTTP:
//
//	GET  {base}/api/drafts/{id}?draft_type={type}
//	POST {base}/api/drafts/?draft_type={type}
//	PUT  {base}/api/drafts/{id}?draft_type={type}
//	POST {base}/api/drafts/{id}/publish?draft_type={type}
type HTTPStore struct {
	opts HTTPOptions
}

// HTTPOptions configures an HTTPStore.
type HTTPOptions struct {
	// BaseURL is the API root without the /api/drafts suffix.
	BaseURL string

	// DraftType names the record type stored server-side, e.g. "ToolDraft".
	DraftType string

	// Token is sent as a bearer credential when non-empty.
	Token string

	// HTTPClient overrides the transport. Defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// HTTPOptionFn mutates HTTPOptions.
type HTTPOptionFn func(*HTTPOptions)

// WithBaseURL sets the API root.
func WithBaseURL(base string) HTTPOptionFn {
	return func(o *HTTPOptions) { o.BaseURL = base }
}

// WithDraftType sets the server-side record type name.
func WithDraftType(draftType string) HTTPOptionFn {
	return func(o *HTTPOptions) { o.DraftType = draftType }
}

// WithToken sets the bearer credential.
func WithToken(token string) HTTPOptionFn {
	return func(o *HTTPOptions) { o.Token = token }
}

// WithHTTPClient overrides the transport.
func WithHTTPClient(client *http.Client) HTTPOptionFn {
	return func(o *HTTPOptions) { o.HTTPClient = client }
}

// NewHTTPStore constructs an HTTP-backed draft store.
func NewHTTPStore(fns ...HTTPOptionFn) (*HTTPStore, error) {
	opts := HTTPOptions{}
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, errors.New("store: base url is required")
	}
	if strings.TrimSpace(opts.DraftType) == "" {
		return nil, errors.New("store: draft type is required")
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	return &HTTPStore{opts: opts}, nil
}

var _ DraftStore = (*HTTPStore)(nil)

// FetchDraft retrieves a draft by its persisted id.
func (s *HTTPStore) FetchDraft(ctx context.Context, id int) (*draft.Draft, error) {
	endpoint := s.draftURL(strconv.Itoa(id))
	return s.roundTrip(ctx, http.MethodGet, endpoint, nil)
}

// SaveDraft persists the draft, creating it when the store has not assigned
// an id yet.
func (s *HTTPStore) SaveDraft(ctx context.Context, d *draft.Draft) (*draft.Draft, error) {
	if d == nil {
		return nil, errors.New("store: draft is required")
	}
	body, err := json.Marshal(Payload{Draft: d.JSON, AssociatedCollectionID: d.AssociatedCollectionID})
	if err != nil {
		return nil, fmt.Errorf("store: marshal draft: %w", err)
	}
	method := http.MethodPost
	endpoint := s.draftURL("")
	if d.Persisted() {
		method = http.MethodPut
		endpoint = s.draftURL(strconv.Itoa(d.APIID))
	}
	return s.roundTrip(ctx, method, endpoint, body)
}

// PublishDraft asks the store to publish a previously saved draft.
func (s *HTTPStore) PublishDraft(ctx context.Context, d *draft.Draft) (*draft.Draft, error) {
	if d == nil {
		return nil, errors.New("store: draft is required")
	}
	if !d.Persisted() {
		return nil, errors.New("store: draft has not been saved")
	}
	endpoint := s.draftURL(strconv.Itoa(d.APIID) + "/publish")
	return s.roundTrip(ctx, http.MethodPost, endpoint, nil)
}

func (s *HTTPStore) draftURL(suffix string) string {
	base := strings.TrimRight(s.opts.BaseURL, "/") + "/api/drafts/"
	if suffix != "" {
		base += suffix
	}
	return base + "?draft_type=" + s.opts.DraftType
}

func (s *HTTPStore) roundTrip(ctx context.Context, method, endpoint string, body []byte) (*draft.Draft, error) {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("store: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.opts.Token)
	}

	resp, err := s.opts.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var failure struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&failure); err == nil && failure.Error != "" {
			return nil, StatusError{Code: resp.StatusCode, Err: errors.New(failure.Error)}
		}
		return nil, StatusError{Code: resp.StatusCode}
	}

	var payload Payload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("store: decode response: %w", err)
	}
	return payload.ToDraft(), nil
}
