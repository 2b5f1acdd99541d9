// Package version reports build information for the fluxkit binary.
//
//	go build -ldflags "-X github.com/kbukum/fluxkit/version.Version=1.2.0" ./cmd/fluxkit
package version
