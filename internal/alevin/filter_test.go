// SPDX-License-Identifier: MPL-2.0

package alevin

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func cellCount(n int) *int { return &n }

func TestFilterRequestMethod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		req      FilterRequest
		wantArgs []string
	}{
		{
			name:     "knee",
			req:      FilterRequest{Knee: true},
			wantArgs: nil,
		},
		{
			name:     "forced cells",
			req:      FilterRequest{ForcedCells: cellCount(3000)},
			wantArgs: []string{"--force-cells", "3000"},
		},
		{
			name:     "forced zero cells is a selection",
			req:      FilterRequest{ForcedCells: cellCount(0)},
			wantArgs: []string{"--force-cells", "0"},
		},
		{
			name:     "expect cells",
			req:      FilterRequest{ExpectCells: cellCount(5000)},
			wantArgs: []string{"--expect-cells", "5000"},
		},
		{
			name:     "expect zero cells is a selection",
			req:      FilterRequest{ExpectCells: cellCount(0)},
			wantArgs: []string{"--expect-cells", "0"},
		},
		{
			name:     "unfiltered default min reads",
			req:      FilterRequest{Unfiltered: true, ExternalList: "/home/af/plist/10x_v3_permit.txt"},
			wantArgs: []string{"--unfiltered-pl", "/home/af/plist/10x_v3_permit.txt", "--min-reads", "10"},
		},
		{
			name:     "unfiltered custom min reads",
			req:      FilterRequest{Unfiltered: true, MinReads: 25, ExternalList: "pl.txt"},
			wantArgs: []string{"--unfiltered-pl", "pl.txt", "--min-reads", "25"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := tt.req.Method()
			if err != nil {
				t.Fatalf("Method() error = %v", err)
			}
			if got := m.Args(); !slices.Equal(got, tt.wantArgs) {
				t.Errorf("Args() = %v, want %v", got, tt.wantArgs)
			}
		})
	}
}

func TestFilterRequestMethod_Selection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     FilterRequest
		wantErr error
	}{
		{name: "none", req: FilterRequest{}, wantErr: ErrNoFilterMethod},
		{name: "min reads alone selects nothing", req: FilterRequest{MinReads: 10}, wantErr: ErrNoFilterMethod},
		{name: "knee and forced", req: FilterRequest{Knee: true, ForcedCells: cellCount(0)}, wantErr: ErrMultipleFilterMethods},
		{name: "expect and unfiltered", req: FilterRequest{Unfiltered: true, ExpectCells: cellCount(10)}, wantErr: ErrMultipleFilterMethods},
		{name: "all four", req: FilterRequest{Knee: true, Unfiltered: true, ForcedCells: cellCount(1), ExpectCells: cellCount(1)}, wantErr: ErrMultipleFilterMethods},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.req.Method()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Method() error = %v, want %v", err, tt.wantErr)
			}
			var selErr *FilterSelectionError
			if !errors.As(err, &selErr) {
				t.Fatalf("expected *FilterSelectionError, got %T", err)
			}
		})
	}
}

func TestFilterRequestMethod_NegativeCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     FilterRequest
		wantMsg string
	}{
		{name: "forced", req: FilterRequest{ForcedCells: cellCount(-5)}, wantMsg: "--forced-cells must not be negative, got -5"},
		{name: "expect", req: FilterRequest{ExpectCells: cellCount(-1)}, wantMsg: "--expect-cells must not be negative, got -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.req.Method()
			if !errors.Is(err, ErrInvalidCellCount) {
				t.Fatalf("Method() error = %v, want ErrInvalidCellCount", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantMsg)
			}
			if errors.Is(err, ErrNoFilterMethod) {
				t.Error("a given cell count must not be reported as a missing method")
			}
		})
	}
}

func TestFilterSelectionErrorMessage(t *testing.T) {
	t.Parallel()

	err := &FilterSelectionError{Selected: []string{"--knee", "--expect-cells"}}
	want := "only one cell filtering method may be given, got --knee, --expect-cells"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
