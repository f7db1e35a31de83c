// Package version reports the build version, set at link time with
// -ldflags "-X github.com/carbonroots/carbonroots/pkg/version.version=v1.2.3".
package version

var (
	version = "dev"     //nolint:gochecknoglobals // Set by ldflags
	commit  = "unknown" //nolint:gochecknoglobals // Set by ldflags
	date    = "unknown" //nolint:gochecknoglobals // Set by ldflags
)

// GetVersion returns the release version.
func GetVersion() string {
	return version
}

// GetCommit returns the git commit the binary was built from.
func GetCommit() string {
	return commit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return date
}

// String returns the full version line shown by --version.
func String() string {
	return version + " (commit " + commit + ", built " + date + ")"
}
