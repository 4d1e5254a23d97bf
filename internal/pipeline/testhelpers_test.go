// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"github.com/simpleaf/simpleaf/internal/alevin"
	"github.com/simpleaf/simpleaf/internal/progs"
	"github.com/simpleaf/simpleaf/pkg/types"
)

func testPrograms() *progs.RequiredPrograms {
	return &progs.RequiredPrograms{
		Salmon:    &progs.ProgramInfo{ExePath: "/opt/bin/salmon", Version: "1.9.0"},
		AlevinFry: &progs.ProgramInfo{ExePath: "/opt/bin/alevin-fry", Version: "0.8.2"},
		Pyroe:     &progs.ProgramInfo{ExePath: "/opt/bin/pyroe", Version: "0.9.3"},
	}
}

func testQuantOptions(out string) QuantOptions {
	return QuantOptions{
		Index:      "/data/idx/index",
		Reads1:     []types.FilesystemPath{"/data/s_L001_R1.fq.gz", "/data/s_L002_R1.fq.gz"},
		Reads2:     []types.FilesystemPath{"/data/s_L001_R2.fq.gz", "/data/s_L002_R2.fq.gz"},
		Threads:    8,
		Filter:     alevin.FilterRequest{Knee: true},
		Resolution: "cr-like",
		Chemistry:  alevin.ChemistryTenxV3,
		T2GMap:     "/data/idx/ref/splici_fl86_t2g_3col.tsv",
		Output:     types.FilesystemPath(out),
	}
}

func cellCount(n int) *int { return &n }
