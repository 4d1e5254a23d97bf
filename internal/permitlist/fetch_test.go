// SPDX-License-Identifier: MPL-2.0

package permitlist

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/simpleaf/simpleaf/internal/alevin"
	"github.com/simpleaf/simpleaf/internal/runner"
	"github.com/simpleaf/simpleaf/internal/runner/runnertest"
	"github.com/simpleaf/simpleaf/pkg/types"
)

type fakeDownloader struct {
	calls [][2]string
	err   error
}

func (f *fakeDownloader) Download(_ context.Context, url, dest string) error {
	f.calls = append(f.calls, [2]string{url, dest})
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(dest, []byte("AAACCCAAGAAACACT\n"), 0o644)
}

func TestFetch_DownloadsWhenAbsent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dl := &fakeDownloader{}
	f := NewFetcher(root, dl)

	res, err := f.Fetch(context.Background(), alevin.ChemistryTenxV2)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	want := filepath.Join(root, "plist", "10x_v2_permit.txt")
	if res.Status != StatusDownloaded || res.Path != want {
		t.Errorf("Fetch() = %+v, want downloaded %s", res, want)
	}
	if len(dl.calls) != 1 {
		t.Fatalf("expected one download, got %d", len(dl.calls))
	}
	if dl.calls[0][0] != "https://umd.box.com/shared/static/jbs2wszgbj7k4ic2hass9ts6nhqkwq1p" {
		t.Errorf("download URL = %s", dl.calls[0][0])
	}
	if dl.calls[0][1] != want {
		t.Errorf("download dest = %s, want %s", dl.calls[0][1], want)
	}
}

func TestFetch_AlreadyPresent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := filepath.Join(root, "plist", "10x_v3_permit.txt")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	dl := &fakeDownloader{}
	res, err := NewFetcher(root, dl).Fetch(context.Background(), alevin.ChemistryTenxV3)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if res.Status != StatusAlreadyPresent || res.Path != path {
		t.Errorf("Fetch() = %+v", res)
	}
	if len(dl.calls) != 0 {
		t.Error("a cached permit list must not be downloaded again")
	}
}

func TestFetch_UnregisteredChemistry(t *testing.T) {
	t.Parallel()

	dl := &fakeDownloader{}
	res, err := NewFetcher("", dl).Fetch(context.Background(), alevin.ParseChemistry("dropseq"))
	if err != nil {
		t.Fatalf("unregistered chemistry needs no cache root, got %v", err)
	}
	if res.Status != StatusUnregisteredChemistry || res.Path != "" {
		t.Errorf("Fetch() = %+v", res)
	}
	if len(dl.calls) != 0 {
		t.Error("unregistered chemistry must not download")
	}
}

func TestFetch_MissingRoot(t *testing.T) {
	t.Parallel()

	for _, root := range []string{"", "   "} {
		_, err := NewFetcher(root, &fakeDownloader{}).Fetch(context.Background(), alevin.ChemistryTenxV3)
		if !errors.Is(err, ErrConfig) {
			t.Errorf("root %q: error = %v, want ErrConfig", root, err)
		}
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) || cfgErr.EnvVar != "ALEVIN_FRY_HOME" {
			t.Errorf("root %q: expected ConfigError naming ALEVIN_FRY_HOME, got %v", root, err)
		}
	}
}

func TestFetch_DownloadFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("network unreachable")
	_, err := NewFetcher(t.TempDir(), &fakeDownloader{err: boom}).Fetch(context.Background(), alevin.ChemistryTenxV2)
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want %v", err, boom)
	}
}

func TestFetch_WgetCommand(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	rec := runnertest.New()
	f := NewFetcher(root, NewWgetDownloader(rec, ""))

	res, err := f.Fetch(context.Background(), alevin.ChemistryTenxV2)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if res.Status != StatusDownloaded {
		t.Errorf("Status = %v", res.Status)
	}

	cmd, ok := rec.Find("wget")
	if !ok {
		t.Fatal("wget was not run")
	}
	want := []string{
		"wget", "-v", "-O", filepath.Join(root, "plist", "10x_v2_permit.txt"),
		"-L", "https://umd.box.com/shared/static/jbs2wszgbj7k4ic2hass9ts6nhqkwq1p",
	}
	if !slices.Equal(cmd.Argv(), want) {
		t.Errorf("argv = %v, want %v", cmd.Argv(), want)
	}
	if info, err := os.Stat(filepath.Join(root, "plist")); err != nil || !info.IsDir() {
		t.Errorf("plist directory should be created before download: %v", err)
	}
}

func TestFetch_WgetFailure(t *testing.T) {
	t.Parallel()

	rec := runnertest.New()
	rec.SetResult("wget", &runner.Result{ExitCode: types.ExitCode(8)})
	rec.OnRun(func(cmd runner.Command) {
		// wget leaves a truncated file behind when it fails mid-transfer
		_ = os.WriteFile(cmd.Args[2], []byte("AAAC"), 0o644)
	})
	root := t.TempDir()
	_, err := NewFetcher(root, NewWgetDownloader(rec, "")).Fetch(context.Background(), alevin.ChemistryTenxV3)

	var dlErr *DownloadError
	if !errors.As(err, &dlErr) {
		t.Fatalf("expected *DownloadError, got %v", err)
	}
	if dlErr.ExitCode != 8 {
		t.Errorf("ExitCode = %d, want 8", dlErr.ExitCode)
	}
	if !errors.Is(err, ErrDownloadFailed) {
		t.Error("DownloadError should unwrap to ErrDownloadFailed")
	}
	if _, statErr := os.Stat(filepath.Join(root, "plist", "10x_v3_permit.txt")); !os.IsNotExist(statErr) {
		t.Errorf("partial download should be removed, stat err = %v", statErr)
	}
}

func TestLocate(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	f := NewFetcher(root, &fakeDownloader{})

	path, present, err := f.Locate(alevin.ChemistryTenxV3)
	if err != nil {
		t.Fatal(err)
	}
	if present {
		t.Error("permit list should not be present yet")
	}
	if path != filepath.Join(root, "plist", "10x_v3_permit.txt") {
		t.Errorf("path = %s", path)
	}
	if _, err := os.Stat(filepath.Join(root, "plist")); !os.IsNotExist(err) {
		t.Error("Locate must not create the cache directory")
	}
}

func TestNewDownloader(t *testing.T) {
	t.Parallel()

	rec := runnertest.New()
	if d, err := NewDownloader("", rec); err != nil {
		t.Errorf("default downloader: %v", err)
	} else if _, ok := d.(*WgetDownloader); !ok {
		t.Errorf("default downloader = %T, want *WgetDownloader", d)
	}
	if d, err := NewDownloader("http", rec); err != nil {
		t.Errorf("http downloader: %v", err)
	} else if _, ok := d.(*HTTPDownloader); !ok {
		t.Errorf("http downloader = %T", d)
	}
	if _, err := NewDownloader("curl", rec); err == nil {
		t.Error("unknown downloader should be rejected")
	}
}

func TestRegisteredChemistries(t *testing.T) {
	t.Parallel()

	got := RegisteredChemistries()
	want := []alevin.Chemistry{alevin.ChemistryTenxV2, alevin.ChemistryTenxV3}
	if !slices.Equal(got, want) {
		t.Errorf("RegisteredChemistries() = %v, want %v", got, want)
	}
	for _, chem := range got {
		if !chem.IsRegistered() {
			t.Errorf("%s has a permit list but IsRegistered() is false", chem)
		}
	}
}
