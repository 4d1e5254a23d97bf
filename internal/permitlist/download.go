// SPDX-License-Identifier: MPL-2.0

package permitlist

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/simpleaf/simpleaf/internal/runner"
)

const (
	// DownloaderWget selects the external wget downloader.
	DownloaderWget = "wget"
	// DownloaderHTTP selects the built-in HTTP downloader.
	DownloaderHTTP = "http"

	defaultUserAgent = "simpleaf"
)

type (
	// WgetDownloader runs `wget -v -O <dest> -L <url>` through a runner.
	WgetDownloader struct {
		runner runner.Runner
		exe    string
	}

	// HTTPDownloader downloads with net/http, writing through a temporary
	// file that is renamed into place once complete.
	HTTPDownloader struct {
		httpClient *http.Client
		userAgent  string
	}

	// HTTPOption configures an HTTPDownloader during construction.
	HTTPOption func(*HTTPDownloader)
)

// NewWgetDownloader creates a WgetDownloader. An empty exe means "wget".
func NewWgetDownloader(run runner.Runner, exe string) *WgetDownloader {
	if exe == "" {
		exe = "wget"
	}
	return &WgetDownloader{runner: run, exe: exe}
}

// Command returns the wget invocation for url and dest.
func (w *WgetDownloader) Command(rawURL, dest string) runner.Command {
	return runner.Command{
		Stage: "wget",
		Path:  w.exe,
		Args:  []string{"-v", "-O", dest, "-L", rawURL},
	}
}

// Download runs wget and fails when it exits non-zero. A partial dest is
// removed so the next run does not mistake it for a cached list.
func (w *WgetDownloader) Download(ctx context.Context, rawURL, dest string) error {
	res := w.runner.Run(ctx, w.Command(rawURL, dest))
	if !res.Success() {
		_ = os.Remove(dest)
		return &DownloadError{URL: redactURL(rawURL), Dest: dest, ExitCode: res.ExitCode, Err: res.Error}
	}
	return nil
}

// WithHTTPClient sets a custom HTTP client, useful for tests or proxy configurations.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(d *HTTPDownloader) {
		d.httpClient = c
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) HTTPOption {
	return func(d *HTTPDownloader) {
		d.userAgent = ua
	}
}

// NewHTTPDownloader creates an HTTPDownloader using http.DefaultClient.
func NewHTTPDownloader(opts ...HTTPOption) *HTTPDownloader {
	d := &HTTPDownloader{
		httpClient: http.DefaultClient,
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Download fetches rawURL into dest. Redirects are followed. dest is only
// created once the whole body has been written.
func (d *HTTPDownloader) Download(ctx context.Context, rawURL, dest string) (err error) {
	fail := func(cause error) error {
		return &DownloadError{URL: redactURL(rawURL), Dest: dest, Err: cause}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return fail(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fail(fmt.Errorf("executing request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }() // read-only HTTP response body

	if resp.StatusCode != http.StatusOK {
		return fail(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".permit-download-*")
	if err != nil {
		return fail(fmt.Errorf("creating temp file: %w", err))
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, copyErr := io.Copy(tmp, resp.Body); copyErr != nil {
		_ = tmp.Close()
		return fail(fmt.Errorf("writing to temp file: %w", copyErr))
	}
	if closeErr := tmp.Close(); closeErr != nil {
		return fail(fmt.Errorf("closing temp file: %w", closeErr))
	}
	if renameErr := os.Rename(tmpName, dest); renameErr != nil {
		return fail(fmt.Errorf("moving download into place: %w", renameErr))
	}
	return nil
}

// NewDownloader returns the downloader selected by kind (DownloaderWget or
// DownloaderHTTP). An empty kind selects wget.
func NewDownloader(kind string, run runner.Runner) (Downloader, error) {
	switch kind {
	case "", DownloaderWget:
		return NewWgetDownloader(run, ""), nil
	case DownloaderHTTP:
		return NewHTTPDownloader(), nil
	default:
		return nil, fmt.Errorf("unknown permit list downloader %q (want %q or %q)", kind, DownloaderWget, DownloaderHTTP)
	}
}

// redactURL strips query parameters and fragments from a URL for safe inclusion
// in error messages.
func redactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid-url>"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
