package menu

import (
	"math/rand"
	"testing"
)

func TestNewRejectsBadItems(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatalf("expected error for empty menu")
	}
	if _, err := New([]Item{{ID: "X", Station: "FRYER", CookSeconds: 5}}); err == nil {
		t.Fatalf("expected error for unknown station")
	}
	if _, err := New([]Item{
		{ID: "X", Station: StationOven, CookSeconds: 5},
		{ID: "X", Station: StationOven, CookSeconds: 5},
	}); err == nil {
		t.Fatalf("expected error for duplicate id")
	}
}

func TestDigestStable(t *testing.T) {
	a := Default()
	b := Default()
	if a.Digest == "" || a.Digest != b.Digest {
		t.Fatalf("digest not stable: %q vs %q", a.Digest, b.Digest)
	}
}

func TestRandomItemDeterministic(t *testing.T) {
	m := Default()
	r1 := rand.New(rand.NewSource(7))
	r2 := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		if m.RandomItem(r1).ID != m.RandomItem(r2).ID {
			t.Fatalf("same seed produced different picks at draw %d", i)
		}
	}
}

func TestCompleteOrder(t *testing.T) {
	m := Default()
	cook := m.CookTicks("PIZZA", 1)

	res := m.CompleteOrder("PIZZA", "PIZZA", false, cook, 10, 1)
	if !res.Success || res.Bonus != 10 {
		t.Fatalf("fast correct delivery: got %+v", res)
	}

	res = m.CompleteOrder("PIZZA", "PIZZA", false, 10*cook, 10, 1)
	if !res.Success || res.Bonus != 0 {
		t.Fatalf("slow correct delivery should succeed without bonus: got %+v", res)
	}

	res = m.CompleteOrder("PIZZA", "BURGER", false, 1, 10, 1)
	if res.Success {
		t.Fatalf("wrong item must not succeed")
	}

	res = m.CompleteOrder("PIZZA", "PIZZA", true, 1, 10, 1)
	if res.Success {
		t.Fatalf("burnt food must not succeed")
	}
}
