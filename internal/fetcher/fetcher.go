// Package fetcher opens input spreadsheets from local paths, HTTP(S) URLs
// or FTP URLs, and reads CSV and XLSX content into string rows.
package fetcher

import (
	"context"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Fetcher downloads a remote file.
type Fetcher interface {
	// Download fetches the URL and returns the response body.
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}

// Options configures an Opener.
type Options struct {
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	RatePerSec float64
}

// Opener resolves a source string to a readable stream. Sources with an
// http, https or ftp scheme are downloaded; anything else is a local path.
type Opener struct {
	fetchers map[string]Fetcher
}

// NewOpener creates an Opener backed by the HTTP and FTP fetchers.
func NewOpener(opts Options) *Opener {
	h := NewHTTPFetcher(HTTPOptions{
		UserAgent:  opts.UserAgent,
		Timeout:    opts.Timeout,
		MaxRetries: opts.MaxRetries,
		RatePerSec: rate.Limit(opts.RatePerSec),
	})
	f := NewFTPFetcher(FTPOptions{Timeout: opts.Timeout, MaxRetries: opts.MaxRetries})
	return &Opener{fetchers: map[string]Fetcher{
		"http":  h,
		"https": h,
		"ftp":   f,
	}}
}

// WithFetcher registers fetcher for a URL scheme, replacing any existing one.
func (o *Opener) WithFetcher(scheme string, fetcher Fetcher) *Opener {
	if o.fetchers == nil {
		o.fetchers = make(map[string]Fetcher)
	}
	o.fetchers[strings.ToLower(scheme)] = fetcher
	return o
}

// Open returns the content of src. The caller must close it.
func (o *Opener) Open(ctx context.Context, src string) (io.ReadCloser, error) {
	if src == "" {
		return nil, eris.New("fetcher: empty source")
	}

	if scheme := schemeOf(src); scheme != "" {
		f, ok := o.fetchers[scheme]
		if !ok {
			return nil, eris.Errorf("fetcher: unsupported scheme %q", scheme)
		}
		zap.L().Debug("fetcher: downloading", zap.String("url", src))
		rc, err := f.Download(ctx, src)
		if err != nil {
			return nil, eris.Wrapf(err, "fetcher: download %s", src)
		}
		return rc, nil
	}

	file, err := os.Open(src)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: open file")
	}
	return file, nil
}

// SourceName returns the file name of src, without any URL query, so its
// extension can be used to pick a parser.
func SourceName(src string) string {
	if schemeOf(src) != "" {
		if u, err := url.Parse(src); err == nil {
			return path.Base(u.Path)
		}
	}
	return filepath.Base(src)
}

// schemeOf returns the lower-cased URL scheme of src, or "" for a local
// path. Single-letter schemes are Windows drive letters.
func schemeOf(src string) string {
	i := strings.Index(src, "://")
	if i <= 1 {
		return ""
	}
	return strings.ToLower(src[:i])
}
