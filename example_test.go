package grip_test

import (
	"fmt"

	"github.com/dacapoday/grip"
)

func Example() {
	type session struct{ name string }

	// The factory allocates the resource and its bookkeeping as one
	// unit; the finalizer runs exactly once, on the last release.
	handle := grip.MakeWith(func(s *session) {
		fmt.Println("closing", s.name)
	}, session{name: "alpha"})

	// Observers do not keep the resource alive, but can promote
	// themselves to owners while it still has one.
	observer := handle.Downgrade()
	defer observer.Release()

	if locked := observer.Lock(); locked.Valid() {
		fmt.Println("locked", locked.Get().name)
		locked.Release()
	}

	handle.Release()

	if locked := observer.Lock(); !locked.Valid() {
		fmt.Println("gone")
	}

	// Output:
	// locked alpha
	// closing alpha
	// gone
}
