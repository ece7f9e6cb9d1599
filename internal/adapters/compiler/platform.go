package compiler

import (
	"github.com/blang/semver/v4"
	"go.trai.ch/zkc/internal/core/domain"
)

var armThreshold = semver.MustParse(domain.ARM64BuildsSince)

// platformFor maps GOOS/GOARCH to a release build. Anything without a
// native build gets the portable module.
func platformFor(goos, goarch string) domain.Platform {
	switch {
	case goos == "linux" && goarch == "amd64":
		return domain.PlatformLinuxAMD64
	case goos == "darwin" && goarch == "amd64":
		return domain.PlatformMacAMD64
	case goos == "darwin" && goarch == "arm64":
		return domain.PlatformMacARM64
	case goos == "windows" && goarch == "amd64":
		return domain.PlatformWindowsAMD64
	default:
		return domain.PlatformPortable
	}
}

// adjustForARM applies the arm64 threshold. Releases before it have no arm64
// build: strict mode runs the x64 build under translation, otherwise the
// version is raised to the threshold.
func adjustForARM(platform domain.Platform, version semver.Version, strict bool) (domain.Platform, semver.Version) {
	if platform != domain.PlatformMacARM64 || version.GTE(armThreshold) {
		return platform, version
	}
	if strict {
		return domain.PlatformMacAMD64, version
	}
	return platform, armThreshold
}

// assetName is the release asset of a platform build.
func assetName(platform domain.Platform) string {
	if platform.IsPortable() {
		return string(domain.PlatformPortable)
	}
	return "circom-" + string(platform)
}
