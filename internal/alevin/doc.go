// SPDX-License-Identifier: MPL-2.0

// Package alevin holds the alevin-fry vocabulary shared by the pipeline and
// the CLI: the sequencing chemistry and the cell filtering strategy, along
// with their translation into aligner and generate-permit-list arguments.
package alevin
