package gateway

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"

	"github.com/openmuseum/collections/internal/domain"
)

const imageCacheTTL = 10 * time.Minute

// ImageGateway proxies image bytes from the upstream image host. Fetched
// bytes and their content type are cached in memcached keyed by public
// path; the catalog rows only store paths, the bytes live upstream.
type ImageGateway struct {
	baseURL string
	client  *http.Client
	cache   *memcache.Client
}

func NewImageGateway(baseURL string, cache *memcache.Client) *ImageGateway {
	return &ImageGateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		cache:   cache,
	}
}

// Fetch returns the image bytes and upstream content type for a stored
// public path.
func (g *ImageGateway) Fetch(ctx context.Context, publicPath string) ([]byte, string, error) {
	if data, contentType, ok := g.cached(publicPath); ok {
		return data, contentType, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+publicPath, nil)
	if err != nil {
		return nil, "", errors.Wrap(err, "ImageGateway.Fetch: building upstream request")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, "", errors.Wrap(err, "ImageGateway.Fetch: upstream request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, "", domain.NotFoundError{Resource: "image"}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", errors.Errorf("ImageGateway.Fetch: upstream returned %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", errors.Wrap(err, "ImageGateway.Fetch: reading upstream body")
	}

	contentType := resp.Header.Get("Content-Type")
	g.store(publicPath, data, contentType)

	return data, contentType, nil
}

func (g *ImageGateway) cached(publicPath string) ([]byte, string, bool) {
	if g.cache == nil {
		return nil, "", false
	}
	body, err := g.cache.Get("imgbody:" + publicPath)
	if err != nil {
		return nil, "", false
	}
	contentType, err := g.cache.Get("imgtype:" + publicPath)
	if err != nil {
		return nil, "", false
	}
	return body.Value, string(contentType.Value), true
}

func (g *ImageGateway) store(publicPath string, data []byte, contentType string) {
	if g.cache == nil {
		return
	}
	expiry := int32(imageCacheTTL.Seconds())
	// cache failures are non-fatal, the next fetch goes upstream again
	_ = g.cache.Set(&memcache.Item{Key: "imgbody:" + publicPath, Value: data, Expiration: expiry})
	_ = g.cache.Set(&memcache.Item{Key: "imgtype:" + publicPath, Value: []byte(contentType), Expiration: expiry})
}
