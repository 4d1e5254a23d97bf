// SPDX-License-Identifier: MPL-2.0

package permitlist

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestHTTPDownloader_Success(t *testing.T) {
	t.Parallel()

	const body = "AAACCCAAGAAACACT\nAAACCCAAGAAACCAT\n"
	uaCh := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/shared/static/list" {
			http.Redirect(w, r, "/files/list.txt", http.StatusFound)
			return
		}
		uaCh <- r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	dest := filepath.Join(t.TempDir(), "10x_v3_permit.txt")
	d := NewHTTPDownloader(WithHTTPClient(srv.Client()), WithUserAgent("simpleaf-test"))
	if err := d.Download(context.Background(), srv.URL+"/shared/static/list", dest); err != nil {
		t.Fatalf("Download() error = %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != body {
		t.Errorf("content = %q, want %q", data, body)
	}
	if gotUA := <-uaCh; gotUA != "simpleaf-test" {
		t.Errorf("User-Agent = %q", gotUA)
	}
}

func TestHTTPDownloader_BadStatusLeavesNoFile(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	dest := filepath.Join(dir, "10x_v2_permit.txt")
	err := NewHTTPDownloader(WithHTTPClient(srv.Client())).Download(context.Background(), srv.URL+"/x?token=secret", dest)
	if !errors.Is(err, ErrDownloadFailed) {
		t.Fatalf("error = %v, want ErrDownloadFailed", err)
	}

	var dlErr *DownloadError
	if errors.As(err, &dlErr) && dlErr.URL != srv.URL+"/x" {
		t.Errorf("URL should be redacted, got %s", dlErr.URL)
	}

	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if len(entries) != 0 {
		t.Errorf("failed download left files behind: %v", entries)
	}
}

func TestHTTPDownloader_ContextCanceled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("x"))
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewHTTPDownloader(WithHTTPClient(srv.Client())).Download(ctx, srv.URL, filepath.Join(t.TempDir(), "pl.txt"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestRedactURL(t *testing.T) {
	t.Parallel()

	if got := redactURL("https://example.com/a?sig=abc#frag"); got != "https://example.com/a" {
		t.Errorf("redactURL = %q", got)
	}
}
