// SPDX-License-Identifier: MPL-2.0

// Package pipeline builds and runs the simpleaf workflows.
//
// The index workflow builds a splici reference with pyroe and indexes it with
// salmon. The quant workflow maps reads with salmon alevin and runs the
// alevin-fry generate-permit-list, collate and quant stages. Stages run one at
// a time through a runner.Runner; the first stage that exits non-zero stops
// the workflow with a *StageFailure.
//
// Every workflow is first turned into a Plan, which a caller can render
// instead of executing (dry-run).
package pipeline
