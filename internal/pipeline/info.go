// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/simpleaf/simpleaf/internal/progs"
)

// IndexInfoFileName is the provenance record written into the index output directory.
const IndexInfoFileName = "index_info.json"

type (
	// IndexInfo records how an index was built.
	IndexInfo struct {
		Command     string                  `json:"command"`
		VersionInfo *progs.RequiredPrograms `json:"version_info"`
		T2GFile     string                  `json:"t2g_file"`
		Args        IndexArgs               `json:"args"`
	}

	// IndexArgs are the index options as the user gave them. Optional paths
	// are null when unset.
	IndexArgs struct {
		Fasta     string  `json:"fasta"`
		GTF       string  `json:"gtf"`
		Rlen      int     `json:"rlen"`
		Output    string  `json:"output"`
		Spliced   *string `json:"spliced"`
		Unspliced *string `json:"unspliced"`
		Dedup     bool    `json:"dedup"`
		Sparse    bool    `json:"sparse"`
		Threads   int     `json:"threads"`
	}
)

func newIndexInfo(rp *progs.RequiredPrograms, opts IndexOptions, t2g string) *IndexInfo {
	return &IndexInfo{
		Command:     "index",
		VersionInfo: rp,
		T2GFile:     t2g,
		Args: IndexArgs{
			Fasta:     opts.Fasta.String(),
			GTF:       opts.GTF.String(),
			Rlen:      opts.ReadLength,
			Output:    opts.Output.String(),
			Spliced:   optionalPath(opts.Spliced.String()),
			Unspliced: optionalPath(opts.Unspliced.String()),
			Dedup:     opts.Dedup,
			Sparse:    opts.Sparse,
			Threads:   opts.Threads,
		},
	}
}

// WriteIndexInfo writes info as pretty-printed JSON to path.
func WriteIndexInfo(path string, info *IndexInfo) error {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("could not write %s: %w", path, err)
	}
	return nil
}

func optionalPath(p string) *string {
	if p == "" {
		return nil
	}
	return &p
}
