package allocation

import (
	"context"

	"hostel_manager/model"
)

// QueryService is the read-only view over the inventory store. It never
// mutates and is safe to call concurrently with the coordinator;
// callers may observe pre- or post-state of an in-flight claim, never a
// state violating the occupancy invariants after an operation returned.
type QueryService struct {
	store InventoryStore
}

func NewQueryService(store InventoryStore) *QueryService {
	return &QueryService{store: store}
}

// GetActiveAllocation resolves the student's current room. Returns nil
// when the student holds none; external subsystems treat nil as "no
// eligible room".
func (q *QueryService) GetActiveAllocation(ctx context.Context, studentID uint) (*model.Allocation, error) {
	if studentID == 0 {
		return nil, ErrNotAuthenticated
	}
	return q.store.ActiveAllocationByStudent(ctx, studentID)
}

// GetAllocation loads one allocation by ID, active or not.
func (q *QueryService) GetAllocation(ctx context.Context, allocationID uint) (model.Allocation, error) {
	return q.store.GetAllocation(ctx, allocationID)
}

// GetCurrentOccupant is the room-side lookup.
func (q *QueryService) GetCurrentOccupant(ctx context.Context, roomID uint) (*model.Allocation, error) {
	return q.store.ActiveAllocationByRoom(ctx, roomID)
}

// ListHistory returns the student's allocations newest first; on equal
// start dates the higher (most recently created) ID wins.
func (q *QueryService) ListHistory(ctx context.Context, studentID uint) ([]model.Allocation, error) {
	if studentID == 0 {
		return nil, ErrNotAuthenticated
	}
	return q.store.History(ctx, studentID)
}

// ListAvailableRooms lists free rooms ordered by room number.
func (q *QueryService) ListAvailableRooms(ctx context.Context, filter RoomFilter) ([]model.Room, error) {
	return q.store.AvailableRooms(ctx, filter)
}
