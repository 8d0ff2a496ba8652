package datasource

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/toxicwind/ComfyUI-Manager/internal/branding"
)

// DefaultTimeout bounds a single remote fetch.
const DefaultTimeout = 30 * time.Second

const memoTTL = 10 * time.Minute

// Source fetches the document called name from a channel location.
type Source interface {
	Fetch(ctx context.Context, mode Mode, name, location string) ([]byte, error)
}

// Client is the Source used by the CLI.
type Client struct {
	// LocalDir holds the local copies read in local mode and used as the
	// fallback for failed remote fetches.
	LocalDir string
	// CacheDir holds documents written by remote fetches.
	CacheDir string
	Logger   *slog.Logger

	httpClient *http.Client
	memo       *gocache.Cache
	now        func() time.Time
}

// Compile-time check that Client implements Source.
var _ Source = (*Client)(nil)

// NewClient returns a Client whose HTTP requests time out after timeout.
// A non-positive timeout uses DefaultTimeout.
func NewClient(localDir, cacheDir string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		LocalDir:   localDir,
		CacheDir:   cacheDir,
		Logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
		memo:       gocache.New(memoTTL, 2*memoTTL),
		now:        time.Now,
	}
}

// Fetch returns the document for mode. Remote and cache fetches that fail
// fall back to the local copy; if that is missing too the fetch error is
// returned.
func (c *Client) Fetch(ctx context.Context, mode Mode, name, location string) ([]byte, error) {
	if mode == ModeLocal {
		return c.readLocal(name)
	}

	uri := strings.TrimRight(location, "/") + "/" + name
	key := string(mode) + "|" + uri
	if v, ok := c.memo.Get(key); ok {
		return v.([]byte), nil
	}

	data, err := c.fetch(ctx, mode, name, uri)
	if err != nil {
		local, lerr := c.readLocal(name)
		if lerr != nil {
			return nil, err
		}
		c.Logger.Warn("remote fetch failed, using local copy", "uri", uri, "error", err)
		return local, nil
	}

	c.memo.SetDefault(key, data)
	return data, nil
}

func (c *Client) fetch(ctx context.Context, mode Mode, name, uri string) ([]byte, error) {
	if mode == ModeCache && c.CacheDir != "" {
		data, err := loadCached(c.CacheDir, uri, name, CacheMaxAge, c.now())
		if err != nil {
			c.Logger.Warn("ignoring unreadable cache entry", "uri", uri, "error", err)
		}
		if data != nil {
			c.Logger.Debug("serving cached document", "uri", uri)
			return data, nil
		}
	}

	data, err := c.get(ctx, uri)
	if err != nil {
		return nil, err
	}

	if c.CacheDir != "" {
		if err := saveCached(c.CacheDir, uri, name, data); err != nil {
			c.Logger.Warn("could not cache document", "uri", uri, "error", err)
		}
	}
	return data, nil
}

// get reads uri over HTTP, or from disk when it is not an http(s) URL.
func (c *Client) get(ctx context.Context, uri string) ([]byte, error) {
	if !strings.HasPrefix(uri, "http://") && !strings.HasPrefix(uri, "https://") {
		data, err := os.ReadFile(uri)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", uri, err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", branding.CLIName())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", uri, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: server returned status %d", uri, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}

func (c *Client) readLocal(name string) ([]byte, error) {
	path := filepath.Join(c.LocalDir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading local %s: %w", name, err)
	}
	return data, nil
}
