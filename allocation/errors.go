package allocation

import "errors"

// Error taxonomy of the allocation engine. Handlers match with errors.Is
// and translate to HTTP statuses; AlreadyAllocated and RoomUnavailable are
// business outcomes and must never be retried, StoreUnavailable may be
// retried by the caller with backoff.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrAlreadyAllocated = errors.New("student already has an active allocation")
	ErrRoomUnavailable  = errors.New("room is not available")
	ErrNotFound         = errors.New("record not found")
	ErrAlreadyReleased  = errors.New("allocation already released")
	ErrStoreUnavailable = errors.New("inventory store unavailable")
)
