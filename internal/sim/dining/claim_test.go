package dining

import "testing"

func TestClaimExclusivity(t *testing.T) {
	var s ClaimSlot
	if !s.TryClaim("W1") {
		t.Fatalf("first claim should succeed")
	}
	if s.TryClaim("W2") {
		t.Fatalf("second claimant must be rejected")
	}
	if !s.Claimed() || s.Holder() != "W1" {
		t.Fatalf("slot should be held by W1, got %q", s.Holder())
	}
	// Re-claiming by the holder is a no-op success.
	if !s.TryClaim("W1") {
		t.Fatalf("holder re-claim should succeed")
	}
}

func TestReleaseOwnershipCheck(t *testing.T) {
	var s ClaimSlot
	s.TryClaim("W1")
	if s.Release("W2") {
		t.Fatalf("non-holder release must be rejected")
	}
	if s.Holder() != "W1" {
		t.Fatalf("slot changed by rejected release")
	}
	if !s.Release("W1") {
		t.Fatalf("holder release should succeed")
	}
	if s.Claimed() {
		t.Fatalf("slot should be empty after release")
	}
	// Released-then-reassigned slot must not be stolen back by a stale releaser.
	s.TryClaim("W3")
	if s.Release("W1") {
		t.Fatalf("stale releaser must not clear the slot")
	}
	if s.Holder() != "W3" {
		t.Fatalf("slot lost to stale release")
	}
}

func TestForceClear(t *testing.T) {
	var s ClaimSlot
	if got := s.ForceClear(); got != "" {
		t.Fatalf("empty slot force-clear returned %q", got)
	}
	s.TryClaim("K1")
	if got := s.ForceClear(); got != "K1" {
		t.Fatalf("expected previous holder K1, got %q", got)
	}
	if s.Claimed() {
		t.Fatalf("slot should be empty after force-clear")
	}
}

func TestEmptyClaimantRejected(t *testing.T) {
	var s ClaimSlot
	if s.TryClaim("") {
		t.Fatalf("empty claimant must be rejected")
	}
	if s.Release("") {
		t.Fatalf("empty releaser must be rejected")
	}
}
