package allocation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hostel_manager/model"
)

func newTestStore(t *testing.T, roomCount int) (*MemoryStore, []uint) {
	t.Helper()
	store := NewMemoryStore()
	ids := make([]uint, 0, roomCount)
	for i := 0; i < roomCount; i++ {
		id := store.AddRoom(model.Room{
			RoomNumber:    string(rune('A' + i)),
			Floor:         1,
			Capacity:      1,
			PricePerMonth: 250,
			Type:          model.RoomSingle,
		})
		ids = append(ids, id)
	}
	return store, ids
}

// checkOccupancyInvariant asserts Room.Occupied == true iff an active
// allocation references the room, for every room.
func checkOccupancyInvariant(t *testing.T, store *MemoryStore) {
	t.Helper()
	ctx := context.Background()
	store.mu.Lock()
	rooms := make([]model.Room, 0, len(store.rooms))
	for _, room := range store.rooms {
		rooms = append(rooms, room)
	}
	store.mu.Unlock()

	for _, room := range rooms {
		occupant, err := store.ActiveAllocationByRoom(ctx, room.ID)
		require.NoError(t, err)
		if room.Occupied {
			require.NotNil(t, occupant, "room %d occupied without active allocation", room.ID)
		} else {
			require.Nil(t, occupant, "room %d free but has active allocation", room.ID)
		}
	}
}

func TestClaimRoomSuccess(t *testing.T) {
	store, rooms := newTestStore(t, 1)
	coord := NewCoordinator(store, zap.NewNop())

	alloc, err := coord.ClaimRoom(context.Background(), 7, rooms[0])
	require.NoError(t, err)
	require.NotNil(t, alloc)
	require.Equal(t, uint(7), alloc.StudentID)
	require.Equal(t, rooms[0], alloc.RoomID)
	require.Nil(t, alloc.EndDate)
	require.NotEmpty(t, alloc.PublicCode)
	require.False(t, alloc.StartDate.After(time.Now()))

	room, err := store.GetRoom(context.Background(), rooms[0])
	require.NoError(t, err)
	require.True(t, room.Occupied)
	checkOccupancyInvariant(t, store)
}

func TestClaimRoomRequiresIdentity(t *testing.T) {
	store, rooms := newTestStore(t, 1)
	coord := NewCoordinator(store, zap.NewNop())

	_, err := coord.ClaimRoom(context.Background(), 0, rooms[0])
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestClaimRoomSecondClaimRejected(t *testing.T) {
	store, rooms := newTestStore(t, 2)
	coord := NewCoordinator(store, zap.NewNop())
	ctx := context.Background()

	_, err := coord.ClaimRoom(ctx, 7, rooms[0])
	require.NoError(t, err)

	_, err = coord.ClaimRoom(ctx, 7, rooms[1])
	require.ErrorIs(t, err, ErrAlreadyAllocated)

	// The losing room must stay free.
	room, err := store.GetRoom(ctx, rooms[1])
	require.NoError(t, err)
	require.False(t, room.Occupied)
	checkOccupancyInvariant(t, store)
}

func TestClaimOccupiedRoom(t *testing.T) {
	store, rooms := newTestStore(t, 1)
	coord := NewCoordinator(store, zap.NewNop())
	ctx := context.Background()

	_, err := coord.ClaimRoom(ctx, 7, rooms[0])
	require.NoError(t, err)

	_, err = coord.ClaimRoom(ctx, 8, rooms[0])
	require.ErrorIs(t, err, ErrRoomUnavailable)

	// No allocation row for the loser.
	history, err := store.History(ctx, 8)
	require.NoError(t, err)
	require.Empty(t, history)
	checkOccupancyInvariant(t, store)
}

func TestClaimUnknownRoom(t *testing.T) {
	store, _ := newTestStore(t, 1)
	coord := NewCoordinator(store, zap.NewNop())

	_, err := coord.ClaimRoom(context.Background(), 7, 999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestReleaseThenRebook(t *testing.T) {
	store, rooms := newTestStore(t, 1)
	coord := NewCoordinator(store, zap.NewNop())
	ctx := context.Background()

	alloc, err := coord.ClaimRoom(ctx, 7, rooms[0])
	require.NoError(t, err)

	released, err := coord.ReleaseRoom(ctx, alloc.ID)
	require.NoError(t, err)
	require.NotNil(t, released.EndDate)
	require.False(t, released.EndDate.Before(released.StartDate))

	room, err := store.GetRoom(ctx, rooms[0])
	require.NoError(t, err)
	require.False(t, room.Occupied)
	checkOccupancyInvariant(t, store)

	// Same student can book the same room again.
	again, err := coord.ClaimRoom(ctx, 7, rooms[0])
	require.NoError(t, err)
	require.Nil(t, again.EndDate)
	require.NotEqual(t, alloc.ID, again.ID)
	checkOccupancyInvariant(t, store)
}

func TestReleaseIsIdempotent(t *testing.T) {
	store, rooms := newTestStore(t, 1)
	coord := NewCoordinator(store, zap.NewNop())
	ctx := context.Background()

	alloc, err := coord.ClaimRoom(ctx, 7, rooms[0])
	require.NoError(t, err)

	first, err := coord.ReleaseRoom(ctx, alloc.ID)
	require.NoError(t, err)

	_, err = coord.ReleaseRoom(ctx, alloc.ID)
	require.ErrorIs(t, err, ErrAlreadyReleased)

	// Second call changed nothing.
	stored, err := store.GetAllocation(ctx, alloc.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.EndDate)
	require.True(t, stored.EndDate.Equal(*first.EndDate))
	checkOccupancyInvariant(t, store)
}

func TestReleaseUnknownAllocation(t *testing.T) {
	store, _ := newTestStore(t, 1)
	coord := NewCoordinator(store, zap.NewNop())

	_, err := coord.ReleaseRoom(context.Background(), 42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestConcurrentClaimsSameRoom(t *testing.T) {
	const callers = 32
	store, rooms := newTestStore(t, 1)
	coord := NewCoordinator(store, zap.NewNop())
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]error, callers)
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, err := coord.ClaimRoom(ctx, uint(i+1), rooms[0])
			results[i] = err
		}(i)
	}
	close(start)
	wg.Wait()

	wins, losses := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrRoomUnavailable):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, wins)
	require.Equal(t, callers-1, losses)

	active, err := store.ActiveAllocations(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	checkOccupancyInvariant(t, store)
}

func TestConcurrentClaimsSameStudent(t *testing.T) {
	store, rooms := newTestStore(t, 2)
	coord := NewCoordinator(store, zap.NewNop())
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]error, 2)
	start := make(chan struct{})
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, err := coord.ClaimRoom(ctx, 7, rooms[i])
			results[i] = err
		}(i)
	}
	close(start)
	wg.Wait()

	wins, losses := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrAlreadyAllocated):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, wins)
	require.Equal(t, 1, losses)

	// Exactly one room occupied, and it is the winner's room. The
	// loser's compare-and-set was rolled back by the compensation.
	active, err := store.ActiveAllocations(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)

	_, occupied, err := store.CountRooms(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, occupied)
	checkOccupancyInvariant(t, store)
}

func TestConcurrentClaimReleaseChurn(t *testing.T) {
	const students = 16
	store, rooms := newTestStore(t, 4)
	coord := NewCoordinator(store, zap.NewNop())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < students; i++ {
		wg.Add(1)
		go func(studentID uint) {
			defer wg.Done()
			for round := 0; round < 10; round++ {
				room := rooms[(int(studentID)+round)%len(rooms)]
				alloc, err := coord.ClaimRoom(ctx, studentID, room)
				if err != nil {
					continue
				}
				if _, err := coord.ReleaseRoom(ctx, alloc.ID); err != nil {
					t.Errorf("release failed: %v", err)
					return
				}
			}
		}(uint(i + 1))
	}
	wg.Wait()

	checkOccupancyInvariant(t, store)

	// Nobody may end the churn holding more than one active allocation.
	for i := 0; i < students; i++ {
		history, err := store.History(ctx, uint(i+1))
		require.NoError(t, err)
		activeCount := 0
		for _, alloc := range history {
			if alloc.EndDate == nil {
				activeCount++
			}
		}
		require.LessOrEqual(t, activeCount, 1)
	}
}

func TestAvailabilityHook(t *testing.T) {
	store, rooms := newTestStore(t, 1)
	coord := NewCoordinator(store, zap.NewNop())
	ctx := context.Background()

	var mu sync.Mutex
	var events []AvailabilityEvent
	coord.OnAvailabilityChange = func(ev AvailabilityEvent) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	}

	alloc, err := coord.ClaimRoom(ctx, 7, rooms[0])
	require.NoError(t, err)
	_, err = coord.ReleaseRoom(ctx, alloc.ID)
	require.NoError(t, err)

	require.Len(t, events, 2)
	require.True(t, events[0].Occupied)
	require.False(t, events[1].Occupied)
	require.Equal(t, rooms[0], events[0].RoomID)
}
