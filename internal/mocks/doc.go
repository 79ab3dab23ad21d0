// Package mocks provides hand-written mock implementations of the store
// and service interfaces for testing. Each mock offers function fields for
// per-test behavior and a map-backed default implementation.
package mocks
