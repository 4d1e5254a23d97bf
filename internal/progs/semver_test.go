// SPDX-License-Identifier: MPL-2.0

package progs

import (
	"errors"
	"testing"
)

func TestParseVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "1.9.0", want: "1.9.0"},
		{input: "v0.4.1", want: "0.4.1"},
		{input: "1.10.0-rc.1", want: "1.10.0-rc.1"},
		{input: "0.6.2+build.7", want: "0.6.2"},
		{input: "1.9", wantErr: true},
		{input: "1", wantErr: true},
		{input: "", wantErr: true},
		{input: "salmon", wantErr: true},
		{input: "01.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			v, err := ParseVersion(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidVersion) {
					t.Fatalf("ParseVersion(%q) error = %v, want ErrInvalidVersion", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersion(%q) unexpected error: %v", tt.input, err)
			}
			if v.String() != tt.want {
				t.Errorf("String() = %q, want %q", v.String(), tt.want)
			}
		})
	}
}

func TestVersion_OriginalKeepsBuildMetadata(t *testing.T) {
	t.Parallel()

	v, err := ParseVersion("1.5.1+build7")
	if err != nil {
		t.Fatal(err)
	}
	if v.Original() != "1.5.1+build7" {
		t.Errorf("Original() = %q, want %q", v.Original(), "1.5.1+build7")
	}
	if v.String() != "1.5.1" {
		t.Errorf("String() = %q, want %q", v.String(), "1.5.1")
	}
}

func TestCheckVersionConstraints_PartialComparators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rng    string
		output string
	}{
		{rng: "^0", output: "tool 0.5.0"},
		{rng: "~1", output: "tool 1.4.0"},
		{rng: "^1.2", output: "tool 1.7.3"},
		{rng: "~1.2", output: "tool 1.2.11"},
	}

	for _, tt := range tests {
		t.Run(tt.rng, func(t *testing.T) {
			t.Parallel()
			if _, err := CheckVersionConstraints(tt.rng, tt.output); err != nil {
				t.Errorf("CheckVersionConstraints(%q, %q) error = %v", tt.rng, tt.output, err)
			}
		})
	}
}

func TestVersionCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{"1.5.1", "1.5.1", 0},
		{"1.5.1", "1.5.2", -1},
		{"2.0.0", "1.99.99", 1},
		{"1.0.0-alpha", "1.0.0", -1},
		{"1.0.0-alpha", "1.0.0-beta", -1},
		{"1.0.0+a", "1.0.0+b", 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			t.Parallel()
			a, err := ParseVersion(tt.a)
			if err != nil {
				t.Fatal(err)
			}
			b, err := ParseVersion(tt.b)
			if err != nil {
				t.Fatal(err)
			}
			if got := a.Compare(b); got != tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRangeMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rng     string
		version string
		want    bool
	}{
		{">=1.5.1, <2.0.0", "1.5.1", true},
		{">=1.5.1, <2.0.0", "1.9.0", true},
		{">=1.5.1, <2.0.0", "1.5.0", false},
		{">=1.5.1, <2.0.0", "2.0.0", false},
		{">=1.5.1, <2.0.0", "2.0.0-beta.1", true},
		{">=0.4.1, <1.0.0", "0.8.2", true},
		{">=0.4.1, <1.0.0", "0.4.0", false},
		{">= 0.6.2 < 1.0.0", "0.6.2", true},
		{"1.2.3", "1.2.3", true},
		{"1.2.3", "1.2.4", false},
		{"=1.2.3", "1.2.3", true},
		{">1.2.3", "1.2.3", false},
		{"<=1.2.3", "1.2.3", true},
		{"^1.2.3", "1.9.0", true},
		{"^1.2.3", "2.0.0", false},
		{"^0.2.3", "0.2.9", true},
		{"^0.2.3", "0.3.0", false},
		{"^0.0.3", "0.0.4", false},
		{"~1.2.3", "1.2.9", true},
		{"~1.2.3", "1.3.0", false},
		{">=1.2", "1.2.0", true},
		{"^1.2.3", "2.0.0-rc.1", false},
		{"^0", "0.5.0", true},
		{"^0", "0.0.0", true},
		{"^0", "1.0.0", false},
		{"^0.0", "0.0.9", true},
		{"^0.0", "0.1.0", false},
		{"^1.2", "1.9.9", true},
		{"^1.2", "1.1.9", false},
		{"^1.2", "2.0.0", false},
		{"^0.2", "0.2.7", true},
		{"^0.2", "0.3.0", false},
		{"~1", "1.4.0", true},
		{"~1", "2.0.0", false},
		{"~1.2", "1.2.9", true},
		{"~1.2", "1.3.0", false},
		{"=1.2", "1.2.7", true},
		{"1", "1.99.0", true},
		{"=1.2", "1.3.0", false},
		{">1.2", "1.2.9", false},
		{">1.2", "1.3.0", true},
		{"<=1.2", "1.2.9", true},
		{"<=1.2", "1.3.0", false},
		{"<1.2", "1.1.9", true},
		{"<1.2", "1.2.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.rng+"/"+tt.version, func(t *testing.T) {
			t.Parallel()
			r, err := ParseRange(tt.rng)
			if err != nil {
				t.Fatalf("ParseRange(%q) error: %v", tt.rng, err)
			}
			v, err := ParseVersion(tt.version)
			if err != nil {
				t.Fatalf("ParseVersion(%q) error: %v", tt.version, err)
			}
			if got := r.Matches(v); got != tt.want {
				t.Errorf("%q.Matches(%q) = %v, want %v", tt.rng, tt.version, got, tt.want)
			}
		})
	}
}

func TestParseRange_Invalid(t *testing.T) {
	t.Parallel()

	for _, rng := range []string{"", " , ", ">=", ">=abc", "<1.x.0"} {
		t.Run(rng, func(t *testing.T) {
			t.Parallel()
			if _, err := ParseRange(rng); !errors.Is(err, ErrInvalidRange) {
				t.Errorf("ParseRange(%q) error = %v, want ErrInvalidRange", rng, err)
			}
		})
	}
}
