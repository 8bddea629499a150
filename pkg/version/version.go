// Package version exposes the SDK version and build information.
package version

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// Current is the SDK version.
const Current = "1.0.0"

// Semver represents a parsed "major.minor.patch" version.
type Semver struct {
	Major uint16
	Minor uint16
	Patch uint16
}

// Parse parses a "major.minor.patch" version string.
func Parse(s string) (Semver, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Semver{}, fmt.Errorf("invalid version %q: expected major.minor.patch", s)
	}

	var components [3]uint16
	for i, part := range parts {
		v, err := strconv.ParseUint(part, 10, 16)
		if err != nil || part == "" {
			return Semver{}, fmt.Errorf("invalid version %q: bad component %q", s, part)
		}
		components[i] = uint16(v)
	}

	return Semver{Major: components[0], Minor: components[1], Patch: components[2]}, nil
}

// String returns the version as "major.minor.patch".
func (v Semver) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compatible returns true if the other version has the same major version.
func (v Semver) Compatible(other Semver) bool {
	return v.Major == other.Major
}

// BuildInfo returns a human-readable build description, suitable for
// User-Agent strings and support bundles.
func BuildInfo() string {
	return fmt.Sprintf("securenotify-go/%s (%s; %s/%s)",
		Current, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
