package orbit

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"net/http"
	"strings"

	_ "golang.org/x/image/webp"
)

// maxImageBytes bounds a single fetched image.
const maxImageBytes = 32 << 20

// DecodeImage decodes a PNG, JPEG, GIF or WebP image from r.
func DecodeImage(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(io.LimitReader(r, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

// HTTPFetcher loads images over HTTP(S).
type HTTPFetcher struct {
	// Client is used for requests. nil means http.DefaultClient.
	Client *http.Client
}

// Fetch issues a GET for url and decodes the body.
func (f HTTPFetcher) Fetch(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %s", url, resp.Status)
	}
	img, err := DecodeImage(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return img, nil
}

// FSFetcher loads images from a file system. Leading slashes are stripped so
// site-absolute references such as "/images/a.jpg" resolve inside FS.
type FSFetcher struct {
	FS fs.FS
}

// Fetch opens url in the file system and decodes it.
func (f FSFetcher) Fetch(ctx context.Context, url string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := strings.TrimLeft(url, "/")
	file, err := f.FS.Open(name)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer file.Close()
	img, err := DecodeImage(file)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return img, nil
}

// MuxFetcher routes http and https references to Remote and everything else
// to Local. A nil route fails the fetch.
type MuxFetcher struct {
	Remote Fetcher
	Local  Fetcher
}

// Fetch dispatches url to the matching fetcher.
func (m MuxFetcher) Fetch(ctx context.Context, url string) (image.Image, error) {
	target := m.Local
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		target = m.Remote
	}
	if target == nil {
		return nil, fmt.Errorf("fetch %s: no fetcher for reference", url)
	}
	return target.Fetch(ctx, url)
}
