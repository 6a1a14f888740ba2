package grip

import "testing"

func TestChainFinalizer(t *testing.T) {
	var order []string
	fin := ChainFinalizer(
		func(*int) { order = append(order, "first") },
		nil,
		func(*int) { order = append(order, "second") },
	)

	s := NewWithFinalizer(new(int), fin)
	s.Release()

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("finalizers ran as %v, want [first second]", order)
	}
}

func TestNopFinalizer(t *testing.T) {
	closes := 0
	s := NewWithFinalizer(&closeCounted{closes: &closes}, NopFinalizer[closeCounted])
	s.Release()
	if closes != 0 {
		t.Error("NopFinalizer must not close the resource")
	}
}
