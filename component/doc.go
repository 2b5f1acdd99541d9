// Package component defines lifecycle-managed infrastructure for fluxkit
// binaries.
//
// A Component is started before any sample runs and stopped after the last
// one. The Registry starts components in registration order, stops them in
// reverse and aggregates their health for the bootstrap ready check.
package component
