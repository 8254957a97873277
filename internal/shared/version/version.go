// Package version reports the build version and derives the client's
// User-Agent from it.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Version is set at build time with -ldflags "-X .../version.Version=1.2.3".
var Version = "1.0.0"

// Normalize ensures version string has "v" prefix for semver compatibility.
// Examples: "1.2.3" -> "v1.2.3", "v1.2.3" -> "v1.2.3"
func Normalize(version string) string {
	if version == "" {
		return ""
	}
	version = strings.TrimSpace(version)
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// Major returns the major component of version, e.g. "v1", or "" when
// version is not valid semver.
func Major(version string) string {
	return semver.Major(Normalize(version))
}

// UserAgent returns "stripegate go <major>" for the given version, falling
// back to v1 for development builds.
func UserAgent(version string) string {
	major := Major(version)
	if major == "" || major == "v0" {
		major = "v1"
	}
	return "stripegate go " + major
}
