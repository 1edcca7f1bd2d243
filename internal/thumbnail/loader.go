// Package thumbnail fetches photo renditions and scales them down to the
// pixel box of a grid tile.
package thumbnail

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io"
	"net/http"
	"time"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register decoder

	"github.com/devnullvoid/pixgrid/pkg/api"
	"github.com/devnullvoid/pixgrid/pkg/api/interfaces"
)

const (
	// DefaultConcurrency bounds parallel downloads.
	DefaultConcurrency = 4
	// DefaultTTL is how long a scaled thumbnail stays in the cache.
	DefaultTTL = 30 * time.Minute

	maxImageBytes  = 16 << 20
	requestTimeout = 20 * time.Second
)

// ErrNoURL is returned for images without a small rendition.
var ErrNoURL = errors.New("image has no small URL")

// Thumbnail is a scaled RGBA bitmap. Pix holds Width*Height pixels, four
// bytes each, row by row.
type Thumbnail struct {
	Width  int    `json:"w"`
	Height int    `json:"h"`
	Pix    []byte `json:"p"`
}

// At returns the pixel at (x, y). Coordinates outside the bitmap are black.
func (t *Thumbnail) At(x, y int) color.RGBA {
	if t == nil || x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return color.RGBA{A: 255}
	}

	i := (y*t.Width + x) * 4
	return color.RGBA{R: t.Pix[i], G: t.Pix[i+1], B: t.Pix[i+2], A: t.Pix[i+3]}
}

// Options configures a Loader.
type Options struct {
	HTTPClient  *http.Client
	Cache       interfaces.Cache
	Logger      interfaces.Logger
	Concurrency int
	TTL         time.Duration
}

// Option is a function that configures Options.
type Option func(*Options)

// WithHTTPClient replaces the download client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *Options) {
		o.HTTPClient = client
	}
}

// WithCache stores scaled thumbnails in cache.
func WithCache(cache interfaces.Cache) Option {
	return func(o *Options) {
		o.Cache = cache
	}
}

// WithLogger sets the loader's logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithConcurrency bounds the number of downloads in flight.
func WithConcurrency(n int) Option {
	return func(o *Options) {
		o.Concurrency = n
	}
}

// Loader downloads, decodes and scales thumbnails.
type Loader struct {
	httpClient *http.Client
	cache      interfaces.Cache
	logger     interfaces.Logger
	ttl        time.Duration
	sem        chan struct{}
}

// NewLoader creates a Loader.
func NewLoader(options ...Option) *Loader {
	opts := &Options{
		Cache:       &interfaces.NoOpCache{},
		Logger:      &interfaces.NoOpLogger{},
		Concurrency: DefaultConcurrency,
		TTL:         DefaultTTL,
	}
	for _, option := range options {
		option(opts)
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: requestTimeout}
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}

	return &Loader{
		httpClient: opts.HTTPClient,
		cache:      opts.Cache,
		logger:     opts.Logger,
		ttl:        opts.TTL,
		sem:        make(chan struct{}, opts.Concurrency),
	}
}

// Load returns img's small rendition scaled to fit within a box of
// boxW x boxH pixels, keeping its aspect ratio.
func (l *Loader) Load(ctx context.Context, img api.Image, boxW, boxH int) (*Thumbnail, error) {
	if img.URLs.Small == "" {
		return nil, ErrNoURL
	}
	if boxW < 1 || boxH < 1 {
		return nil, fmt.Errorf("invalid thumbnail box %dx%d", boxW, boxH)
	}

	key := cacheKey(img.ID, boxW, boxH)

	var cached Thumbnail
	if found, err := l.cache.Get(key, &cached); err != nil {
		l.logger.Debug("Thumbnail cache read failed for %s: %v", img.ID, err)
	} else if found {
		return &cached, nil
	}

	select {
	case l.sem <- struct{}{}:
		defer func() { <-l.sem }()
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	src, err := l.fetch(ctx, img.URLs.Small)
	if err != nil {
		return nil, fmt.Errorf("thumbnail %s: %w", img.ID, err)
	}

	thumb := Scale(src, boxW, boxH)
	if err := l.cache.Set(key, thumb, l.ttl); err != nil {
		l.logger.Debug("Thumbnail cache write failed for %s: %v", img.ID, err)
	}

	return thumb, nil
}

func (l *Loader) fetch(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download: unexpected status %s", resp.Status)
	}

	src, format, err := image.Decode(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	l.logger.Debug("Decoded %s thumbnail %dx%d from %s", format, src.Bounds().Dx(), src.Bounds().Dy(), url)

	return src, nil
}

// Scale fits src into a boxW x boxH box with approximate bilinear
// interpolation. The result is never smaller than 1x1.
func Scale(src image.Image, boxW, boxH int) *Thumbnail {
	w, h := fit(src.Bounds().Dx(), src.Bounds().Dy(), boxW, boxH)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	return &Thumbnail{Width: w, Height: h, Pix: dst.Pix}
}

func fit(srcW, srcH, boxW, boxH int) (int, int) {
	if srcW < 1 || srcH < 1 {
		return 1, 1
	}

	w, h := boxW, srcH*boxW/srcW
	if h > boxH {
		w, h = srcW*boxH/srcH, boxH
	}

	return max(w, 1), max(h, 1)
}

func cacheKey(id string, w, h int) string {
	return fmt.Sprintf("thumb:%s:%dx%d", id, w, h)
}
