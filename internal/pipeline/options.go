// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"errors"
	"fmt"

	"github.com/simpleaf/simpleaf/internal/alevin"
	"github.com/simpleaf/simpleaf/pkg/types"
)

// MinReadLength is the shortest read length an index can be built for;
// pyroe names its outputs after rlen-5.
const MinReadLength = 6

type (
	// IndexOptions are the inputs of the index workflow.
	IndexOptions struct {
		Fasta      types.FilesystemPath
		GTF        types.FilesystemPath
		ReadLength int
		Output     types.FilesystemPath
		// Spliced and Unspliced are optional extra FASTA files.
		Spliced   types.FilesystemPath
		Unspliced types.FilesystemPath
		Dedup     bool
		Sparse    bool
		Threads   int
	}

	// QuantOptions are the inputs of the quant workflow.
	QuantOptions struct {
		Index      types.FilesystemPath
		Reads1     []types.FilesystemPath
		Reads2     []types.FilesystemPath
		Threads    int
		Filter     alevin.FilterRequest
		Resolution string
		Chemistry  alevin.Chemistry
		T2GMap     types.FilesystemPath
		Output     types.FilesystemPath
	}
)

// Validate checks every field and reports all failures at once.
func (o IndexOptions) Validate() error {
	var errs []error
	if err := o.Fasta.ValidateField("fasta"); err != nil {
		errs = append(errs, err)
	}
	if err := o.GTF.ValidateField("gtf"); err != nil {
		errs = append(errs, err)
	}
	if err := o.Output.ValidateField("output"); err != nil {
		errs = append(errs, err)
	}
	if o.ReadLength < MinReadLength {
		errs = append(errs, fmt.Errorf("rlen must be greater than 5, got %d", o.ReadLength))
	}
	if o.Threads < 1 {
		errs = append(errs, fmt.Errorf("threads must be at least 1, got %d", o.Threads))
	}
	if len(errs) > 0 {
		return &InvalidOptionsError{Workflow: "index", FieldErrors: errs}
	}
	return nil
}

// Validate checks every field and reports all failures at once.
func (o QuantOptions) Validate() error {
	var errs []error
	if err := o.Index.ValidateField("index"); err != nil {
		errs = append(errs, err)
	}
	if err := validateReads("reads1", o.Reads1); err != nil {
		errs = append(errs, err)
	}
	if err := validateReads("reads2", o.Reads2); err != nil {
		errs = append(errs, err)
	}
	if err := o.T2GMap.ValidateField("t2g-map"); err != nil {
		errs = append(errs, err)
	}
	if err := o.Output.ValidateField("output"); err != nil {
		errs = append(errs, err)
	}
	if o.Threads < 1 {
		errs = append(errs, fmt.Errorf("threads must be at least 1, got %d", o.Threads))
	}
	if o.Resolution == "" {
		errs = append(errs, errors.New("resolution is required"))
	}
	if o.Chemistry == "" {
		errs = append(errs, errors.New("chemistry is required"))
	}
	if _, err := o.Filter.Method(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidOptionsError{Workflow: "quant", FieldErrors: errs}
	}
	return nil
}

func validateReads(field string, reads []types.FilesystemPath) error {
	if len(reads) == 0 {
		return fmt.Errorf("at least one %s file is required", field)
	}
	for _, r := range reads {
		if err := r.ValidateField(field); err != nil {
			return err
		}
	}
	return nil
}
