package allocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hostel_manager/model"
)

func TestGetActiveAllocation(t *testing.T) {
	store, rooms := newTestStore(t, 1)
	query := NewQueryService(store)
	ctx := context.Background()

	alloc, err := query.GetActiveAllocation(ctx, 7)
	require.NoError(t, err)
	require.Nil(t, alloc)

	require.NoError(t, store.ClaimOccupancy(ctx, rooms[0]))
	require.NoError(t, store.InsertActiveAllocation(ctx, &model.Allocation{
		StudentID: 7,
		RoomID:    rooms[0],
		StartDate: time.Now(),
	}))

	alloc, err = query.GetActiveAllocation(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, alloc)
	require.Equal(t, rooms[0], alloc.RoomID)
	require.Equal(t, rooms[0], alloc.Room.ID, "active allocation carries the room join")
}

func TestGetActiveAllocationRequiresIdentity(t *testing.T) {
	store, _ := newTestStore(t, 1)
	query := NewQueryService(store)

	_, err := query.GetActiveAllocation(context.Background(), 0)
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestGetCurrentOccupant(t *testing.T) {
	store, rooms := newTestStore(t, 2)
	query := NewQueryService(store)
	ctx := context.Background()

	occupant, err := query.GetCurrentOccupant(ctx, rooms[0])
	require.NoError(t, err)
	require.Nil(t, occupant)

	require.NoError(t, store.ClaimOccupancy(ctx, rooms[0]))
	require.NoError(t, store.InsertActiveAllocation(ctx, &model.Allocation{
		StudentID: 7,
		RoomID:    rooms[0],
		StartDate: time.Now(),
	}))

	occupant, err = query.GetCurrentOccupant(ctx, rooms[0])
	require.NoError(t, err)
	require.NotNil(t, occupant)
	require.Equal(t, uint(7), occupant.StudentID)

	occupant, err = query.GetCurrentOccupant(ctx, rooms[1])
	require.NoError(t, err)
	require.Nil(t, occupant)
}

func TestListHistoryOrdering(t *testing.T) {
	store, rooms := newTestStore(t, 3)
	query := NewQueryService(store)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	closed := base.Add(24 * time.Hour)

	// Two past allocations sharing a start date, one newer.
	for i, start := range []time.Time{base, base, base.Add(48 * time.Hour)} {
		alloc := &model.Allocation{StudentID: 7, RoomID: rooms[i], StartDate: start}
		require.NoError(t, store.InsertActiveAllocation(ctx, alloc))
		require.NoError(t, store.CloseAllocation(ctx, alloc.ID, closed.Add(time.Duration(i)*time.Hour)))
	}

	history, err := query.ListHistory(ctx, 7)
	require.NoError(t, err)
	require.Len(t, history, 3)

	// Newest start date first.
	require.Equal(t, rooms[2], history[0].RoomID)
	// Equal start dates: higher id (created later) wins.
	require.Equal(t, rooms[1], history[1].RoomID)
	require.Equal(t, rooms[0], history[2].RoomID)
	require.Greater(t, history[1].ID, history[2].ID)
}

func TestListAvailableRooms(t *testing.T) {
	store := NewMemoryStore()
	query := NewQueryService(store)
	ctx := context.Background()

	floor2 := 2
	shared := string(model.RoomShared)
	cheap := 300.0

	r101 := store.AddRoom(model.Room{RoomNumber: "101", Floor: 1, Capacity: 1, PricePerMonth: 250, Type: model.RoomSingle})
	store.AddRoom(model.Room{RoomNumber: "202", Floor: 2, Capacity: 2, PricePerMonth: 400, Type: model.RoomDouble})
	store.AddRoom(model.Room{RoomNumber: "203", Floor: 2, Capacity: 4, PricePerMonth: 180, Type: model.RoomShared})
	store.AddRoom(model.Room{RoomNumber: "102", Floor: 1, Capacity: 1, PricePerMonth: 260, Type: model.RoomSingle})

	rooms, err := query.ListAvailableRooms(ctx, RoomFilter{})
	require.NoError(t, err)
	require.Len(t, rooms, 4)
	require.Equal(t, "101", rooms[0].RoomNumber)
	require.Equal(t, "102", rooms[1].RoomNumber)
	require.Equal(t, "202", rooms[2].RoomNumber)
	require.Equal(t, "203", rooms[3].RoomNumber)

	// Occupied rooms drop out.
	require.NoError(t, store.ClaimOccupancy(ctx, r101))
	rooms, err = query.ListAvailableRooms(ctx, RoomFilter{})
	require.NoError(t, err)
	require.Len(t, rooms, 3)

	rooms, err = query.ListAvailableRooms(ctx, RoomFilter{Floor: &floor2})
	require.NoError(t, err)
	require.Len(t, rooms, 2)

	rooms, err = query.ListAvailableRooms(ctx, RoomFilter{Type: &shared})
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	require.Equal(t, "203", rooms[0].RoomNumber)

	rooms, err = query.ListAvailableRooms(ctx, RoomFilter{MaxPrice: &cheap})
	require.NoError(t, err)
	require.Len(t, rooms, 2)
}
