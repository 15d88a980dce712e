package dining

// ClaimSlot is the single claim primitive used for every contended resource:
// customer↔waiter, customer↔chef and food↔waiter reservation. A slot holds at
// most one claimant; TryClaim and Release are the only mutations. In the
// single-goroutine tick model a TryClaim followed by its post-claim checks is
// atomic with respect to every other agent as long as no yield sits between
// them; FSM code must claim and verify within one system pass.
type ClaimSlot struct {
	holder string
}

// TryClaim stores the claimant iff the slot is empty. Claiming a slot you
// already hold succeeds and is a no-op.
func (s *ClaimSlot) TryClaim(id string) bool {
	if id == "" {
		return false
	}
	if s.holder != "" {
		return s.holder == id
	}
	s.holder = id
	return true
}

// Release clears the slot only while held by id. A stale releaser (the slot
// was force-cleared and reassigned) must not steal the slot back.
func (s *ClaimSlot) Release(id string) bool {
	if id == "" || s.holder != id {
		return false
	}
	s.holder = ""
	return true
}

// ForceClear empties the slot regardless of holder and reports who held it.
// Only the resource owner uses this (a departing customer invalidating
// outstanding staff claims on itself).
func (s *ClaimSlot) ForceClear() string {
	h := s.holder
	s.holder = ""
	return h
}

func (s *ClaimSlot) Holder() string { return s.holder }
func (s *ClaimSlot) Claimed() bool  { return s.holder != "" }
