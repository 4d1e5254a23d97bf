// SPDX-License-Identifier: MPL-2.0

// Package permitlist resolves the cell barcode permit lists for the
// registered 10x chemistries. Lists are cached under <ALEVIN_FRY_HOME>/plist
// and downloaded on first use.
package permitlist
