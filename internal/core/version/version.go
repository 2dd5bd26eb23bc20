// Package version reports build metadata set with -ldflags
package version

import "runtime/debug"

// BuildInfo describes the running binary
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Set with
//
//	-ldflags "-X textpolish/internal/core/version.version=v1.0.0 -X textpolish/internal/core/version.commit=abcd"
var (
	version = "1.0.0"
	commit  = ""
	date    = "unknown"
)

// Info returns the build info for service. Commit falls back to the VCS
// revision Go embeds when ldflags did not set it.
func Info(service string) BuildInfo {
	c := commit
	if c == "" {
		c = vcsRevision()
	}
	return BuildInfo{Service: service, Version: version, Commit: c, Date: date}
}

// Version returns the release string
func Version() string { return version }

func vcsRevision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "none"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return "none"
}
