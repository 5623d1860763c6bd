// Package version exposes build-time version information.
//
// Set the variables with linker flags:
//
//	go build -ldflags "-X github.com/ncobase/pagewalk/version.Version=v1.2.0 \
//	    -X github.com/ncobase/pagewalk/version.Revision=$(git rev-parse --short HEAD)"
//
// Without them the module build info is used when available.
package version
