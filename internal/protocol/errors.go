package protocol

const (
	// Protocol/transport validation.
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"

	// Simulation layer. Contention (E_CONFLICT) is a normal negative
	// result, not a failure: the agent picks other work or idles.
	ErrBadRequest    = "E_BAD_REQUEST"
	ErrConflict      = "E_CONFLICT"
	ErrInvalidTarget = "E_INVALID_TARGET"
	ErrNoCapacity    = "E_NO_CAPACITY"
	ErrBlocked       = "E_BLOCKED"
	ErrTimeout       = "E_TIMEOUT"
	ErrStale         = "E_STALE"
	ErrInternal      = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrProtoBadRequest: {},
	ErrBadRequest:      {},
	ErrConflict:        {},
	ErrInvalidTarget:   {},
	ErrNoCapacity:      {},
	ErrBlocked:         {},
	ErrTimeout:         {},
	ErrStale:           {},
	ErrInternal:        {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
