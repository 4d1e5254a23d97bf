// SPDX-License-Identifier: MPL-2.0

package permitlist

import (
	"errors"
	"fmt"

	"github.com/simpleaf/simpleaf/pkg/types"
)

var (
	// ErrConfig is returned when the permit list cache root is not configured.
	ErrConfig = errors.New("permit list cache root not configured")
	// ErrDownloadFailed is returned when a permit list could not be downloaded.
	ErrDownloadFailed = errors.New("permit list download failed")
)

type (
	// ConfigError names the setting that must be provided.
	ConfigError struct {
		EnvVar string
		Key    string
	}

	// DownloadError describes a failed download.
	DownloadError struct {
		URL  string
		Dest string
		// ExitCode is set when an external downloader exited non-zero.
		ExitCode types.ExitCode
		Err      error
	}
)

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("could not resolve $%s environment variable (config key %q)", e.EnvVar, e.Key)
}

// Unwrap returns ErrConfig for errors.Is() compatibility.
func (e *ConfigError) Unwrap() error { return ErrConfig }

// Error implements the error interface.
func (e *DownloadError) Error() string {
	msg := fmt.Sprintf("downloading %s to %s", e.URL, e.Dest)
	if e.ExitCode != types.ExitCodeSuccess {
		msg += fmt.Sprintf(" (exit code %d)", e.ExitCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns ErrDownloadFailed and the underlying cause.
func (e *DownloadError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrDownloadFailed, e.Err}
	}
	return []error{ErrDownloadFailed}
}
