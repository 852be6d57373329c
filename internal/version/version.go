// Package version carries the build version, overridable with
// -ldflags "-X heredity/internal/version.Version=...".
package version

// Version is the release string printed by --version.
var Version = "0.3.0-dev"
