//go:build !debug

package grip

// assertHandle is a no-op in production.
// Enable with -tags debug for runtime checks.
func assertHandle(string, bool) {}
