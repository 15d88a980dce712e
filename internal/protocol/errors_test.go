package protocol

import "testing"

func TestIsKnownCode(t *testing.T) {
	if !IsKnownCode("") {
		t.Fatalf("empty code should be accepted")
	}
	if !IsKnownCode(ErrConflict) {
		t.Fatalf("E_CONFLICT should be known")
	}
	if IsKnownCode("E_MADE_UP") {
		t.Fatalf("unknown code accepted")
	}
}
