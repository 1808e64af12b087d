// Package version reports the slipway binary's own version.
package version

// binaryVersion is stamped by the release build:
//
//	go build -ldflags "-X github.com/tidewater-dev/slipway/internal/version.binaryVersion=1.2.3"
//
// "local" marks uninstrumented source builds.
var binaryVersion = "local"

func Get() string {
	return binaryVersion
}
