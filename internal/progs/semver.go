// SPDX-License-Identifier: MPL-2.0

package progs

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

var (
	// ErrInvalidVersion is returned when a version string is not MAJOR.MINOR.PATCH semver.
	ErrInvalidVersion = errors.New("invalid semantic version")
	// ErrInvalidRange is returned when a version range cannot be parsed.
	ErrInvalidRange = errors.New("invalid version range")
)

type (
	// Version is a parsed semantic version. Build metadata is dropped since
	// it does not take part in precedence.
	Version struct {
		Major, Minor, Patch int
		Prerelease          string

		canonical string
		original  string
		// precision is how many of MAJOR.MINOR.PATCH were written (1 to 3).
		precision int
	}

	// Constraint is a single comparator such as ">=1.5.1".
	Constraint struct {
		// Op is the comparison operator (=, ^, ~, >, >=, <, <=).
		Op string
		// Version is the version to compare against. Missing minor or patch
		// components are filled with zero; a partial version widens "=", "^",
		// "~", ">" and "<=" to every version sharing the written components.
		Version *Version
		// Original is the original constraint string.
		Original string
	}

	// Range is a conjunction of constraints; a version satisfies a range
	// when it satisfies every constraint.
	Range struct {
		Constraints []*Constraint
		Original    string
	}
)

var rangeOps = []string{">=", "<=", ">", "<", "=", "^", "~"}

// ParseVersion parses a full MAJOR.MINOR.PATCH version with optional
// pre-release and build suffixes and an optional leading "v".
func ParseVersion(s string) (*Version, error) {
	return parseVersion(s, false)
}

// parseVersion parses s. When partial is true "1" and "1.2" are accepted
// and padded with zeros, as range comparators allow; the number of written
// components is kept as the version's precision.
func parseVersion(s string, partial bool) (*Version, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "v")
	if trimmed == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
	withoutBuild, _, _ := strings.Cut(trimmed, "+")
	candidate := "v" + withoutBuild
	if !semver.IsValid(candidate) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
	canonical := semver.Canonical(candidate)
	if !partial && canonical != candidate {
		return nil, fmt.Errorf("%w: %q (expected MAJOR.MINOR.PATCH)", ErrInvalidVersion, s)
	}

	writtenCore, _, _ := strings.Cut(withoutBuild, "-")
	precision := strings.Count(writtenCore, ".") + 1

	core, pre, _ := strings.Cut(strings.TrimPrefix(canonical, "v"), "-")
	parts := strings.Split(core, ".")
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidVersion, s, err)
		}
		nums[i] = n
	}

	return &Version{
		Major:      nums[0],
		Minor:      nums[1],
		Patch:      nums[2],
		Prerelease: pre,
		canonical:  canonical,
		original:   strings.TrimSpace(s),
		precision:  precision,
	}, nil
}

// String returns the version without the leading "v" and build metadata.
// Use Original for the version as the tool reported it.
func (v *Version) String() string {
	return strings.TrimPrefix(v.canonical, "v")
}

// Original returns the string the version was parsed from.
func (v *Version) Original() string { return v.original }

// Compare compares two versions by semantic-versioning precedence.
// Returns -1 if v < other, 0 if v == other, 1 if v > other.
func (v *Version) Compare(other *Version) int {
	return semver.Compare(v.canonical, other.canonical)
}

// ParseConstraint parses a single comparator. A bare version means "=".
func ParseConstraint(s string) (*Constraint, error) {
	s = strings.TrimSpace(s)

	op := "="
	rest := s
	for _, candidate := range rangeOps {
		if strings.HasPrefix(s, candidate) {
			op = candidate
			rest = strings.TrimSpace(s[len(candidate):])
			break
		}
	}

	version, err := parseVersion(rest, true)
	if err != nil {
		return nil, fmt.Errorf("%w: constraint %q: %w", ErrInvalidRange, s, err)
	}

	return &Constraint{
		Op:       op,
		Version:  version,
		Original: s,
	}, nil
}

// Matches checks if a version satisfies the constraint. Partial versions
// follow Cargo semantics:
//
//	=1.2   := >=1.2.0 <1.3.0     ^1.2.3 := >=1.2.3 <2.0.0
//	>1.2   := >=1.3.0            ^0.2.3 := >=0.2.3 <0.3.0
//	<=1.2  := <1.3.0             ^0.0.3 := >=0.0.3 <0.0.4
//	~1     := >=1.0.0 <2.0.0     ^0.0   := >=0.0.0 <0.1.0
//	~1.2.3 := >=1.2.3 <1.3.0     ^0     := >=0.0.0 <1.0.0
func (c *Constraint) Matches(v *Version) bool {
	exact := c.Version.precision >= 3
	switch c.Op {
	case "=":
		if exact {
			return v.Compare(c.Version) == 0
		}
		return c.within(v, c.bump(c.Version.precision))

	case "^":
		return c.within(v, c.caretBound())

	case "~":
		if c.Version.precision == 1 {
			return c.within(v, c.bump(1))
		}
		return c.within(v, c.bump(2))

	case ">":
		if exact {
			return v.Compare(c.Version) > 0
		}
		return semver.Compare(v.canonical, c.bump(c.Version.precision)) >= 0

	case ">=":
		return v.Compare(c.Version) >= 0

	case "<":
		return v.Compare(c.Version) < 0

	case "<=":
		if exact {
			return v.Compare(c.Version) <= 0
		}
		return semver.Compare(v.canonical, c.bump(c.Version.precision)+"-0") < 0

	default:
		return false
	}
}

// caretBound returns the exclusive upper bound of a "^" comparator: the
// left-most non-zero written component is bumped, or the last written one.
func (c *Constraint) caretBound() string {
	cv := c.Version
	switch {
	case cv.Major != 0 || cv.precision == 1:
		return c.bump(1)
	case cv.Minor != 0 || cv.precision == 2:
		return c.bump(2)
	default:
		return c.bump(3)
	}
}

// bump returns the canonical version with component n (1-based) incremented
// and every later component zeroed.
func (c *Constraint) bump(n int) string {
	cv := c.Version
	switch n {
	case 1:
		return fmt.Sprintf("v%d.0.0", cv.Major+1)
	case 2:
		return fmt.Sprintf("v%d.%d.0", cv.Major, cv.Minor+1)
	default:
		return fmt.Sprintf("v%d.%d.%d", cv.Major, cv.Minor, cv.Patch+1)
	}
}

// within reports whether v is at least the comparator version and below
// upper. Pre-releases of upper itself are excluded.
func (c *Constraint) within(v *Version, upper string) bool {
	return v.Compare(c.Version) >= 0 && semver.Compare(v.canonical, upper+"-0") < 0
}

// ParseRange parses a comma- or whitespace-separated list of comparators,
// e.g. ">=1.5.1, <2.0.0". An operator may be separated from its version by
// whitespace (">= 1.5.1").
func ParseRange(s string) (*Range, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %q is empty", ErrInvalidRange, s)
	}

	r := &Range{Original: strings.TrimSpace(s)}
	for i := 0; i < len(fields); i++ {
		token := fields[i]
		if isBareOp(token) {
			if i+1 >= len(fields) {
				return nil, fmt.Errorf("%w: operator %q without version in %q", ErrInvalidRange, token, s)
			}
			i++
			token += fields[i]
		}
		c, err := ParseConstraint(token)
		if err != nil {
			return nil, err
		}
		r.Constraints = append(r.Constraints, c)
	}
	return r, nil
}

// Matches reports whether v satisfies every constraint in the range.
func (r *Range) Matches(v *Version) bool {
	for _, c := range r.Constraints {
		if !c.Matches(v) {
			return false
		}
	}
	return true
}

// String returns the range as it was written.
func (r *Range) String() string { return r.Original }

func isBareOp(token string) bool {
	return slices.Contains(rangeOps, token)
}
