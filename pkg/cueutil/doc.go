// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides the CUE helpers behind simpleaf's config file:
// schema compilation and unification, and error formatting that prefixes
// each problem with the offending field path.
//
// # Usage
//
//	//go:embed config_schema.cue
//	var schema string
//
//	m, err := cueutil.DecodeMap(schema, "#Config", data, "config.cue")
//	if err != nil {
//	    return err // includes e.g. "config.cue: permit_list.downloader: ..."
//	}
package cueutil
