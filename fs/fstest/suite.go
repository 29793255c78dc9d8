// Package fstest provides a conformance test suite for validating host
// implementations against the core.Host contract, plus test doubles for
// storages and hosts.
//
// The suite validates contract behavior, not backend specifics. Storages
// differ (S3 directories are virtual, for example), and HostTestConfig lets
// a provider declare those documented differences.
//
// Example usage:
//
//	func TestMyHost(t *testing.T) {
//	    fstest.TestSuite(t, func() core.Host {
//	        return host.NewSync(billy.NewMemory())
//	    })
//	}
package fstest

import (
	"testing"
	"time"

	"github.com/jmgilman/vfs/fs/core"
)

// DefaultTimeout bounds how long the suite waits for any single future.
const DefaultTimeout = 10 * time.Second

// HostTestConfig configures the test suite to match storage behavior.
type HostTestConfig struct {
	// VirtualDirectories indicates directories are virtual (e.g., S3 prefixes).
	// When true, a directory exists only while something is stored below it.
	VirtualDirectories bool

	// SkipTests lists specific test names to skip (for edge cases).
	// Format: "Group/SubTest" (e.g., "Delete/NestedTree").
	SkipTests []string
}

// POSIXTestConfig returns configuration for POSIX-like storages (local, memory).
func POSIXTestConfig() HostTestConfig {
	return HostTestConfig{VirtualDirectories: false}
}

// S3TestConfig returns configuration for S3-like storages (MinIO, S3).
func S3TestConfig() HostTestConfig {
	return HostTestConfig{VirtualDirectories: true}
}

// TestSuite runs all conformance tests against a host.
// The newHost function should return a fresh host over empty storage for
// each call. Uses POSIXTestConfig() by default.
func TestSuite(t *testing.T, newHost func() core.Host) {
	TestSuiteWithConfig(t, newHost, POSIXTestConfig())
}

// TestSuiteWithConfig runs conformance tests with behavior configuration.
func TestSuiteWithConfig(t *testing.T, newHost func() core.Host, config HostTestConfig) {
	groups := []struct {
		name string
		run  func(*testing.T, core.Host, HostTestConfig)
	}{
		{"Read", TestRead},
		{"Write", TestWrite},
		{"List", TestList},
		{"Delete", TestDelete},
		{"Rename", TestRename},
		{"Metadata", TestMetadata},
	}

	for _, group := range groups {
		t.Run(group.name, func(t *testing.T) {
			if config.shouldSkip(group.name) {
				t.Skip("Skipped by provider configuration")
			}
			group.run(t, newHost(), config)
		})
	}
}

func (c HostTestConfig) shouldSkip(name string) bool {
	for _, skip := range c.SkipTests {
		if skip == name {
			return true
		}
	}
	return false
}

func (c HostTestConfig) run(t *testing.T, group, name string, fn func(t *testing.T)) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if c.shouldSkip(group + "/" + name) {
			t.Skip("Skipped by provider configuration")
		}
		fn(t)
	})
}

// Await waits for f to settle, failing the test if it takes longer than
// DefaultTimeout.
func Await[T any](t testing.TB, f *core.Future[T]) (T, error) {
	t.Helper()
	if f == nil {
		t.Fatal("operation returned a nil future")
	}
	select {
	case <-f.Done():
	case <-time.After(DefaultTimeout):
		t.Fatalf("future did not settle within %s", DefaultTimeout)
	}
	return f.Wait()
}

// MustAwait waits for f and fails the test if it settles with an error.
func MustAwait[T any](t testing.TB, f *core.Future[T]) T {
	t.Helper()
	v, err := Await(t, f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return v
}
