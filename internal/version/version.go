// Package version holds the build version, set at link time with
// -ldflags "-X github.com/brunoga/jsonpatch/internal/version.Version=...".
package version

// Version is the version of the jsonpatch command.
var Version = "dev"
