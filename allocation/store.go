package allocation

import (
	"context"
	"time"

	"hostel_manager/model"
)

// RoomFilter narrows available-room listings. Nil fields are ignored.
type RoomFilter struct {
	Floor    *int
	Type     *string
	MaxPrice *float64
}

// Summary is the directory aggregate served to admin dashboards.
type Summary struct {
	TotalRooms        int64 `json:"totalRooms"`
	OccupiedRooms     int64 `json:"occupiedRooms"`
	AvailableRooms    int64 `json:"availableRooms"`
	ActiveAllocations int64 `json:"activeAllocations"`
	TotalStudents     int64 `json:"totalStudents"`
}

// InventoryStore is the single writable source of truth for rooms and
// allocations. The booking coordinator is its only writer; the query
// service and directory only read. Implementations must make
// ClaimOccupancy a compare-and-set (occupied false -> true, conditioned
// on it still being false) and InsertActiveAllocation reject a second
// active allocation for the same student with ErrAlreadyAllocated.
type InventoryStore interface {
	GetRoom(ctx context.Context, roomID uint) (model.Room, error)
	GetAllocation(ctx context.Context, allocationID uint) (model.Allocation, error)

	// ActiveAllocationByStudent returns nil when the student holds no
	// active allocation.
	ActiveAllocationByStudent(ctx context.Context, studentID uint) (*model.Allocation, error)
	ActiveAllocationByRoom(ctx context.Context, roomID uint) (*model.Allocation, error)

	// History lists a student's allocations, newest StartDate first,
	// higher ID first on equal StartDate.
	History(ctx context.Context, studentID uint) ([]model.Allocation, error)
	AvailableRooms(ctx context.Context, filter RoomFilter) ([]model.Room, error)

	// ClaimOccupancy atomically flips the room from free to occupied.
	// Returns ErrRoomUnavailable when a concurrent caller won the room,
	// ErrNotFound when the room does not exist.
	ClaimOccupancy(ctx context.Context, roomID uint) error
	// FreeOccupancy marks the room available again.
	FreeOccupancy(ctx context.Context, roomID uint) error

	// InsertActiveAllocation creates the allocation row with EndDate nil.
	// Returns ErrAlreadyAllocated when the student already holds an
	// active allocation.
	InsertActiveAllocation(ctx context.Context, alloc *model.Allocation) error
	// CloseAllocation sets EndDate exactly once; ErrAlreadyReleased when
	// it was already set.
	CloseAllocation(ctx context.Context, allocationID uint, endDate time.Time) error

	ActiveAllocations(ctx context.Context) ([]model.Allocation, error)
	CountRooms(ctx context.Context) (total int64, occupied int64, err error)
	CountStudents(ctx context.Context) (int64, error)
}
