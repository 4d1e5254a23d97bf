// SPDX-License-Identifier: MPL-2.0

package alevin

import "strings"

const (
	// ChemistryTenxV2 is the 10x Chromium v2 chemistry.
	ChemistryTenxV2 Chemistry = "10xv2"
	// ChemistryTenxV3 is the 10x Chromium v3 chemistry.
	ChemistryTenxV3 Chemistry = "10xv3"
)

// Chemistry names a single-cell protocol. The two 10x chemistries are
// registered; any other value is passed to salmon as a flag of the same name.
type Chemistry string

// ParseChemistry returns the Chemistry for a user-supplied name.
// Unknown names are kept verbatim as an unregistered chemistry.
func ParseChemistry(name string) Chemistry {
	return Chemistry(strings.TrimSpace(name))
}

// String returns the chemistry name.
func (c Chemistry) String() string { return string(c) }

// IsRegistered reports whether the chemistry has a known permit list.
func (c Chemistry) IsRegistered() bool {
	return c == ChemistryTenxV2 || c == ChemistryTenxV3
}

// AlignerFlag returns the salmon alevin flag selecting this chemistry.
func (c Chemistry) AlignerFlag() string {
	switch c {
	case ChemistryTenxV2:
		return "--chromium"
	case ChemistryTenxV3:
		return "--chromiumV3"
	default:
		return "--" + string(c)
	}
}
