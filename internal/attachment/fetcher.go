package attachment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/fieldops/survey-notifier/internal/config"
)

// ErrUnavailable marks any fetch failure. Callers treat it as "no attachment"
// and continue with the text-only confirmation.
var ErrUnavailable = errors.New("attachment unavailable")

// Option customises fetcher behaviour.
type Option func(*Fetcher)

// WithHTTPClient swaps the HTTP client used for downloads.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// Fetcher downloads remote signature images with a bounded timeout, a
// response size cap and a process-wide concurrency limit. It is safe for use
// from concurrent requests.
type Fetcher struct {
	logger   zerolog.Logger
	client   *http.Client
	sem      *semaphore.Weighted
	timeout  time.Duration
	maxBytes int64
}

// New constructs a Fetcher from the supplied configuration.
func New(cfg config.AttachmentConfig, logger zerolog.Logger, opts ...Option) *Fetcher {
	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	concurrent := cfg.MaxConcurrent
	if concurrent <= 0 {
		concurrent = 4
	}

	f := &Fetcher{
		logger:   logger,
		client:   &http.Client{},
		sem:      semaphore.NewWeighted(concurrent),
		timeout:  timeout,
		maxBytes: maxBytes,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}

	return f
}

// Fetch retrieves the referenced resource and returns its bytes. Every
// failure mode, including a non-success status and timeout, is reported as
// ErrUnavailable so call sites can degrade uniformly.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: empty reference", ErrUnavailable)
	}

	if err := f.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer f.sem.Release(1)

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("%w: response exceeds %d bytes", ErrUnavailable, f.maxBytes)
	}

	f.logger.Debug().Str("url", url).Int("bytes", len(data)).Msg("attachment downloaded")
	return data, nil
}
