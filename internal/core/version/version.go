// Package version provides build information for the langid binaries.
package version

import "runtime/debug"

// BuildInfo holds version information about a build.
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version,omitempty"`
}

// Info returns the build information for service. The version, commit, and date
// variables are intended to be set at build time using -ldflags, e.g.
// -X 'langid/internal/core/version.version=v0.1.0' -X 'langid/internal/core/version.commit=abcd'
func Info(service string) BuildInfo {
	bi := BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
	if info, ok := debug.ReadBuildInfo(); ok && info != nil {
		bi.GoVersion = info.GoVersion
		if bi.Commit == "none" {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" && s.Value != "" {
					bi.Commit = s.Value
				}
			}
		}
	}
	return bi
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
