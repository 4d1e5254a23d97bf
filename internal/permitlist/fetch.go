// SPDX-License-Identifier: MPL-2.0

package permitlist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/simpleaf/simpleaf/internal/alevin"
)

const (
	// EnvVar is the environment variable holding the cache root.
	EnvVar = "ALEVIN_FRY_HOME"
	// ConfigKey is the config file key holding the cache root.
	ConfigKey = "alevin_fry_home"

	// dirName is the subdirectory of the cache root holding permit lists.
	dirName = "plist"
)

const (
	// StatusAlreadyPresent means the permit list was found in the cache.
	StatusAlreadyPresent Status = iota + 1
	// StatusDownloaded means the permit list was just downloaded.
	StatusDownloaded
	// StatusUnregisteredChemistry means the chemistry has no known permit list.
	StatusUnregisteredChemistry
)

type (
	// Status is the outcome of a Fetch.
	Status int

	// Result is returned by Fetch. Path is empty for StatusUnregisteredChemistry.
	Result struct {
		Status Status
		Path   string
	}

	// Source is where a chemistry's permit list comes from.
	Source struct {
		FileName string
		URL      string
	}

	// Downloader fetches url into the file dest.
	Downloader interface {
		Download(ctx context.Context, url, dest string) error
	}

	// Fetcher resolves permit lists under a cache root.
	Fetcher struct {
		root       string
		downloader Downloader
		logger     *log.Logger
	}

	// FetcherOption configures a Fetcher.
	FetcherOption func(*Fetcher)
)

var sources = map[alevin.Chemistry]Source{
	alevin.ChemistryTenxV2: {
		FileName: "10x_v2_permit.txt",
		URL:      "https://umd.box.com/shared/static/jbs2wszgbj7k4ic2hass9ts6nhqkwq1p",
	},
	alevin.ChemistryTenxV3: {
		FileName: "10x_v3_permit.txt",
		URL:      "https://umd.box.com/shared/static/eo0qlkfqf2v24ws6dfnxty6gqk1otf2h",
	},
}

// String returns a short description of the status.
func (s Status) String() string {
	switch s {
	case StatusAlreadyPresent:
		return "already present"
	case StatusDownloaded:
		return "download successful"
	case StatusUnregisteredChemistry:
		return "unregistered chemistry"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// SourceFor returns the permit list source of a registered chemistry.
func SourceFor(chem alevin.Chemistry) (Source, bool) {
	src, ok := sources[chem]
	return src, ok
}

// RegisteredChemistries returns every chemistry with a known permit list,
// sorted by name.
func RegisteredChemistries() []alevin.Chemistry {
	chems := maps.Keys(sources)
	slices.Sort(chems)
	return chems
}

// WithLogger sets the logger used to report downloads.
func WithLogger(l *log.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.logger = l
	}
}

// NewFetcher creates a Fetcher caching under root. An empty root is only
// reported as an error when a registered chemistry actually needs it.
func NewFetcher(root string, d Downloader, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		root:       strings.TrimSpace(root),
		downloader: d,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Locate returns the cache path of chem's permit list and whether it is
// already present, without touching the filesystem beyond a stat.
func (f *Fetcher) Locate(chem alevin.Chemistry) (path string, present bool, err error) {
	src, ok := SourceFor(chem)
	if !ok {
		return "", false, nil
	}
	if f.root == "" {
		return "", false, &ConfigError{EnvVar: EnvVar, Key: ConfigKey}
	}

	path = filepath.Join(f.root, dirName, src.FileName)
	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		return path, true, nil
	case errors.Is(statErr, fs.ErrNotExist):
		return path, false, nil
	default:
		return "", false, fmt.Errorf("checking permit list %s: %w", path, statErr)
	}
}

// Fetch returns chem's permit list, downloading it into the cache if absent.
// Unregistered chemistries return StatusUnregisteredChemistry and need no
// cache root.
func (f *Fetcher) Fetch(ctx context.Context, chem alevin.Chemistry) (*Result, error) {
	src, ok := SourceFor(chem)
	if !ok {
		return &Result{Status: StatusUnregisteredChemistry}, nil
	}

	path, present, err := f.Locate(chem)
	if err != nil {
		return nil, err
	}
	if present {
		f.logger.Debug("permit list already present", "chemistry", chem, "path", path)
		return &Result{Status: StatusAlreadyPresent, Path: path}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating permit list directory: %w", err)
	}

	f.logger.Info("downloading permit list", "chemistry", chem, "url", src.URL, "dest", path)
	if err := f.downloader.Download(ctx, src.URL, path); err != nil {
		return nil, err
	}
	return &Result{Status: StatusDownloaded, Path: path}, nil
}
