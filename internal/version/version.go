// Package version reports build information injected at link time.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// ProjectName is the binary and repository name.
const ProjectName = "pixgrid"

// BuildInfo contains build-time information
type BuildInfo struct {
	Version   string `json:"version" yaml:"version"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	Commit    string `json:"commit" yaml:"commit"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	OS        string `json:"os" yaml:"os"`
	Arch      string `json:"arch" yaml:"arch"`
}

// Set at build time via -ldflags "-X github.com/devnullvoid/pixgrid/internal/version.version=..."
var (
	version   = "dev"
	buildDate = "unknown"
	commit    = "unknown"
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// GetBuildInfo returns the current build information. Values not injected
// by ldflags are taken from the module build info when available, which
// covers `go install`.
func GetBuildInfo() *BuildInfo {
	info := &BuildInfo{
		Version:   version,
		BuildDate: buildDate,
		Commit:    commit,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}

	if info.Version != "dev" {
		return info
	}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}

	if v := bi.Main.Version; v != "" && v != "(devel)" {
		info.Version = strings.TrimPrefix(v, "v")
	}

	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			if info.Commit == "unknown" && len(setting.Value) >= 7 {
				info.Commit = setting.Value[:7]
			}
		case "vcs.time":
			if info.BuildDate == "unknown" {
				info.BuildDate = setting.Value
			}
		}
	}

	return info
}

// GetVersionString returns the version prefixed with "v".
func GetVersionString() string {
	return "v" + GetBuildInfo().Version
}

// String renders the multi-line report printed by `pixgrid version`.
func (b *BuildInfo) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s version %s\n", ProjectName, b.Version)
	fmt.Fprintf(&sb, "Build date: %s\n", b.BuildDate)
	fmt.Fprintf(&sb, "Commit: %s\n", b.Commit)
	fmt.Fprintf(&sb, "Go version: %s\n", b.GoVersion)
	fmt.Fprintf(&sb, "OS/Arch: %s/%s\n", b.OS, b.Arch)

	return sb.String()
}

// IsDevBuild reports whether no version was injected at build time.
func IsDevBuild() bool {
	return version == "dev"
}
