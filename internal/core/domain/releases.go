package domain

import (
	"github.com/blang/semver/v4"
	"go.trai.ch/zerr"
)

// CompilerReleases lists every compiler release zkc can acquire, oldest first.
var CompilerReleases = []string{
	"2.0.0", "2.0.1", "2.0.2", "2.0.3", "2.0.4", "2.0.5", "2.0.6", "2.0.7", "2.0.8", "2.0.9",
	"2.1.0", "2.1.1", "2.1.2", "2.1.3", "2.1.4", "2.1.5", "2.1.6", "2.1.7", "2.1.8", "2.1.9",
	"2.2.0", "2.2.1", "2.2.2",
}

// SupportedCompilerRange is the range of acquirable compiler versions.
const SupportedCompilerRange = ">=2.0.0 <=2.2.2"

// ARM64BuildsSince is the first release shipping a macOS arm64 build.
const ARM64BuildsSince = "2.2.0"

var supportedRange = semver.MustParseRange(SupportedCompilerRange)

// ParseCompilerVersion parses a version string, tolerating a leading "v".
func ParseCompilerVersion(version string) (semver.Version, error) {
	v, err := semver.ParseTolerant(version)
	if err != nil {
		return semver.Version{}, zerr.With(zerr.Wrap(ErrInvalidCompilerVersion, err.Error()), "version", version)
	}
	return v, nil
}

// CheckCompilerVersion parses version and rejects anything outside the
// supported range.
func CheckCompilerVersion(version string) (semver.Version, error) {
	v, err := ParseCompilerVersion(version)
	if err != nil {
		return semver.Version{}, err
	}
	if !supportedRange(v) {
		err := zerr.Wrap(ErrUnsupportedCompilerVersion, "version "+v.String())
		err = zerr.With(err, "version", v.String())
		return semver.Version{}, zerr.With(err, "supported", SupportedCompilerRange)
	}
	return v, nil
}

// MinimumCompilerRelease returns the oldest known release that is not older
// than required.
func MinimumCompilerRelease(required semver.Version) (semver.Version, error) {
	for _, r := range CompilerReleases {
		v := semver.MustParse(r)
		if v.GTE(required) {
			return v, nil
		}
	}
	err := zerr.Wrap(ErrUnsupportedCompilerVersion, "no known release covers "+required.String())
	return semver.Version{}, zerr.With(err, "supported", SupportedCompilerRange)
}
