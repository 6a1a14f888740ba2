//go:build debug

package grip

// assertHandle panics on handle misuse, such as MustGet on an empty
// handle. Only enabled with -tags debug.
func assertHandle(method string, ok bool) {
	if !ok {
		panic(method + ": empty handle")
	}
}
