package schemaload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"
)

// Options configures a Loader.
type Options struct {
	// FileSystem backs SourceKindFS sources.
	FileSystem fs.FS

	// HTTPClient backs SourceKindURL sources. When nil and AllowHTTPFallback
	// is set, a client with RequestTimeout is created.
	HTTPClient *http.Client

	// AllowHTTPFallback enables URL sources without an explicit client.
	AllowHTTPFallback bool

	// RequestTimeout bounds HTTP fetches.
	RequestTimeout time.Duration
}

// Loader fetches and parses full document-type schemas from files, an fs.FS,
// or HTTP.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

// New constructs a Loader from pre-resolved options.
func New(options Options) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Load fetches a schema document from the source and parses it into a map.
func (l *Loader) Load(ctx context.Context, src Source) (map[string]any, error) {
	raw, err := l.loadRaw(ctx, src)
	if err != nil {
		return nil, err
	}
	return parseSchema(raw)
}

func (l *Loader) loadRaw(ctx context.Context, src Source) ([]byte, error) {
	if src == nil {
		return nil, errors.New("schemaload: source is nil")
	}

	switch src.Kind() {
	case SourceKindFile:
		return loadFile(ctx, src.Location())
	case SourceKindFS:
		return loadFromFS(ctx, l.fs, src.Location())
	case SourceKindURL:
		if !l.allowHTTP {
			return nil, errors.New("schemaload: http support disabled")
		}
		return loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		return nil, errors.New("schemaload: unsupported source kind")
	}
}

func parseSchema(raw []byte) (map[string]any, error) {
	var schema map[string]any
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, fmt.Errorf("schemaload: parse schema: %w", err)
	}
	if schema == nil {
		return nil, errors.New("schemaload: schema is nil")
	}
	return schema, nil
}

func loadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if path == "" {
		return nil, errors.New("schemaload: file path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemaload: read %s: %w", path, err)
	}
	return data, nil
}

func loadFromFS(ctx context.Context, fsys fs.FS, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if fsys == nil {
		return nil, errors.New("schemaload: filesystem is not configured")
	}
	if path == "" {
		return nil, errors.New("schemaload: fs path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("schemaload: read %s: %w", path, err)
	}
	return data, nil
}

func loadHTTP(ctx context.Context, client *http.Client, url string, timeout time.Duration) ([]byte, error) {
	if client == nil {
		return nil, errors.New("schemaload: http client is not configured")
	}
	if url == "" {
		return nil, errors.New("schemaload: url is required")
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("schemaload: unexpected status " + resp.Status)
	}

	return io.ReadAll(resp.Body)
}
