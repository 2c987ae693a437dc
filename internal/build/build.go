// Package build holds version information set at link time with
// -ldflags "-X github.com/bgallie/sdes/internal/build.Version=...".
package build

var (
	Version = "dev"
	Commit  = "not set"
	Time    = "not set"
)
