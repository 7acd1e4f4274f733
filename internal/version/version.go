// Package version holds the kacl version information.
// The Version variable is set at build time via ldflags.
package version

// Version is the current kacl version. Overridden at release build time:
//
//	go build -ldflags "-X github.com/ariel-frischer/kacl/internal/version.Version=v0.3.0"
var Version = "dev"
