// ABOUTME: Version information for soundstream
// ABOUTME: Reported by the CLI and in the TUI header
package version

import "fmt"

const (
	Version      = "0.1.0"
	Product      = "soundstream"
	Manufacturer = "Resonate Protocol"
)

// Commit is set at build time with -ldflags "-X .../internal/version.Commit=<sha>"
var Commit = "dev"

// String returns the product and version for banners and -version
func String() string {
	return fmt.Sprintf("%s %s (%s)", Product, Version, Commit)
}
