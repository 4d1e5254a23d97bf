// SPDX-License-Identifier: MPL-2.0

package alevin

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/simpleaf/simpleaf/pkg/types"
)

// DefaultMinReads is the minimum read count a barcode needs to be kept when
// filtering against an external permit list.
const DefaultMinReads = 10

var (
	// ErrNoFilterMethod is returned when no cell filtering flag was given.
	ErrNoFilterMethod = errors.New("no cell filtering method selected")
	// ErrMultipleFilterMethods is returned when more than one filtering flag was given.
	ErrMultipleFilterMethods = errors.New("cell filtering methods are mutually exclusive")
	// ErrInvalidCellCount is returned for a negative --forced-cells or --expect-cells.
	ErrInvalidCellCount = errors.New("invalid cell count")
)

type (
	// CellFilterMethod is the strategy generate-permit-list uses to decide
	// which barcodes are real cells.
	CellFilterMethod interface {
		// Args returns the generate-permit-list flags for this method.
		Args() []string
		// String names the method for logs.
		String() string

		isCellFilterMethod()
	}

	// KneeFinding lets alevin-fry locate the knee of the barcode rank curve.
	KneeFinding struct{}

	// ForceCells keeps exactly the top N barcodes.
	ForceCells struct{ N int }

	// ExpectCells uses N as the expected number of cells.
	ExpectCells struct{ N int }

	// UnfilteredExternalList corrects barcodes against an external permit list
	// and keeps those with at least MinReads reads.
	UnfilteredExternalList struct {
		PermitList types.FilesystemPath
		MinReads   int
	}

	// FilterRequest collects the mutually exclusive CLI choices before they
	// are resolved into a single CellFilterMethod. A nil count is unset; zero
	// is a valid count.
	FilterRequest struct {
		Knee         bool
		Unfiltered   bool
		ForcedCells  *int
		ExpectCells  *int
		MinReads     int
		ExternalList types.FilesystemPath
	}

	// FilterSelectionError is returned when a FilterRequest selects zero or
	// several methods.
	FilterSelectionError struct {
		Selected []string
	}
)

func (KneeFinding) isCellFilterMethod()            {}
func (ForceCells) isCellFilterMethod()             {}
func (ExpectCells) isCellFilterMethod()            {}
func (UnfilteredExternalList) isCellFilterMethod() {}

// Args returns no flags: knee finding is alevin-fry's default mode.
func (KneeFinding) Args() []string { return nil }

func (KneeFinding) String() string { return "knee" }

// Args returns the --force-cells flag.
func (f ForceCells) Args() []string {
	return []string{"--force-cells", strconv.Itoa(f.N)}
}

func (f ForceCells) String() string { return fmt.Sprintf("forced-cells(%d)", f.N) }

// Args returns the --expect-cells flag.
func (e ExpectCells) Args() []string {
	return []string{"--expect-cells", strconv.Itoa(e.N)}
}

func (e ExpectCells) String() string { return fmt.Sprintf("expect-cells(%d)", e.N) }

// Args returns the --unfiltered-pl and --min-reads flags.
func (u UnfilteredExternalList) Args() []string {
	return []string{"--unfiltered-pl", u.PermitList.String(), "--min-reads", strconv.Itoa(u.MinReads)}
}

func (u UnfilteredExternalList) String() string {
	return fmt.Sprintf("unfiltered-pl(%s, min-reads=%d)", u.PermitList, u.MinReads)
}

// Error implements the error interface.
func (e *FilterSelectionError) Error() string {
	if len(e.Selected) == 0 {
		return "one of --knee, --unfiltered-pl, --forced-cells or --expect-cells is required"
	}
	return fmt.Sprintf("only one cell filtering method may be given, got %s", strings.Join(e.Selected, ", "))
}

// Unwrap returns ErrNoFilterMethod or ErrMultipleFilterMethods.
func (e *FilterSelectionError) Unwrap() error {
	if len(e.Selected) == 0 {
		return ErrNoFilterMethod
	}
	return ErrMultipleFilterMethods
}

// Selected returns the flag names the request turns on, in a stable order.
func (r FilterRequest) Selected() []string {
	var selected []string
	if r.Knee {
		selected = append(selected, "--knee")
	}
	if r.Unfiltered {
		selected = append(selected, "--unfiltered-pl")
	}
	if r.ForcedCells != nil {
		selected = append(selected, "--forced-cells")
	}
	if r.ExpectCells != nil {
		selected = append(selected, "--expect-cells")
	}
	return selected
}

// Method resolves the request into exactly one CellFilterMethod. The
// unfiltered method is returned with ExternalList as its permit list, which
// the caller normally fills in after fetching it.
func (r FilterRequest) Method() (CellFilterMethod, error) {
	selected := r.Selected()
	if len(selected) != 1 {
		return nil, &FilterSelectionError{Selected: selected}
	}

	switch {
	case r.Knee:
		return KneeFinding{}, nil
	case r.ForcedCells != nil:
		if *r.ForcedCells < 0 {
			return nil, fmt.Errorf("%w: --forced-cells must not be negative, got %d", ErrInvalidCellCount, *r.ForcedCells)
		}
		return ForceCells{N: *r.ForcedCells}, nil
	case r.ExpectCells != nil:
		if *r.ExpectCells < 0 {
			return nil, fmt.Errorf("%w: --expect-cells must not be negative, got %d", ErrInvalidCellCount, *r.ExpectCells)
		}
		return ExpectCells{N: *r.ExpectCells}, nil
	default:
		minReads := r.MinReads
		if minReads <= 0 {
			minReads = DefaultMinReads
		}
		return UnfilteredExternalList{PermitList: r.ExternalList, MinReads: minReads}, nil
	}
}
