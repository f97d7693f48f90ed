package allocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hostel_manager/model"
)

func newGormStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection only: every pooled connection would otherwise get
	// its own empty in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	store := NewGormStore(db)
	require.NoError(t, store.Migrate())
	return store
}

func seedRoom(t *testing.T, store *GormStore, number string) model.Room {
	t.Helper()
	room := model.Room{
		RoomNumber:    number,
		Floor:         1,
		Capacity:      1,
		PricePerMonth: 250,
		Type:          model.RoomSingle,
	}
	require.NoError(t, store.db.Create(&room).Error)
	return room
}

func TestGormClaimOccupancyCompareAndSet(t *testing.T) {
	store := newGormStore(t)
	room := seedRoom(t, store, "101")
	ctx := context.Background()

	require.NoError(t, store.ClaimOccupancy(ctx, room.ID))

	// Second claim loses the compare-and-set.
	require.ErrorIs(t, store.ClaimOccupancy(ctx, room.ID), ErrRoomUnavailable)

	require.ErrorIs(t, store.ClaimOccupancy(ctx, 999), ErrNotFound)

	require.NoError(t, store.FreeOccupancy(ctx, room.ID))
	require.NoError(t, store.ClaimOccupancy(ctx, room.ID))
}

func TestGormActiveStudentUniqueness(t *testing.T) {
	store := newGormStore(t)
	r1 := seedRoom(t, store, "101")
	r2 := seedRoom(t, store, "102")
	ctx := context.Background()

	first := &model.Allocation{PublicCode: "BKG-1", StudentID: 7, RoomID: r1.ID, StartDate: time.Now()}
	require.NoError(t, store.InsertActiveAllocation(ctx, first))

	// The partial unique index rejects a second active row for the
	// same student even though the old rows (end_date set) never do.
	second := &model.Allocation{PublicCode: "BKG-2", StudentID: 7, RoomID: r2.ID, StartDate: time.Now()}
	require.ErrorIs(t, store.InsertActiveAllocation(ctx, second), ErrAlreadyAllocated)

	require.NoError(t, store.CloseAllocation(ctx, first.ID, time.Now()))
	require.NoError(t, store.InsertActiveAllocation(ctx, second))
}

func TestGormCloseAllocationOnce(t *testing.T) {
	store := newGormStore(t)
	room := seedRoom(t, store, "101")
	ctx := context.Background()

	alloc := &model.Allocation{PublicCode: "BKG-1", StudentID: 7, RoomID: room.ID, StartDate: time.Now()}
	require.NoError(t, store.InsertActiveAllocation(ctx, alloc))

	end := time.Now()
	require.NoError(t, store.CloseAllocation(ctx, alloc.ID, end))
	require.ErrorIs(t, store.CloseAllocation(ctx, alloc.ID, end.Add(time.Hour)), ErrAlreadyReleased)
	require.ErrorIs(t, store.CloseAllocation(ctx, 999, end), ErrNotFound)

	stored, err := store.GetAllocation(ctx, alloc.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.EndDate)
}

func TestGormCoordinatorLifecycle(t *testing.T) {
	store := newGormStore(t)
	r1 := seedRoom(t, store, "101")
	r2 := seedRoom(t, store, "102")
	coord := NewCoordinator(store, zap.NewNop())
	query := NewQueryService(store)
	ctx := context.Background()

	alloc, err := coord.ClaimRoom(ctx, 7, r1.ID)
	require.NoError(t, err)
	require.Nil(t, alloc.EndDate)

	// Already holding a room blocks a second claim; the other room
	// stays free.
	_, err = coord.ClaimRoom(ctx, 7, r2.ID)
	require.ErrorIs(t, err, ErrAlreadyAllocated)
	room2, err := store.GetRoom(ctx, r2.ID)
	require.NoError(t, err)
	require.False(t, room2.Occupied)

	// Another student cannot take the held room.
	_, err = coord.ClaimRoom(ctx, 8, r1.ID)
	require.ErrorIs(t, err, ErrRoomUnavailable)

	occupant, err := query.GetCurrentOccupant(ctx, r1.ID)
	require.NoError(t, err)
	require.NotNil(t, occupant)
	require.Equal(t, uint(7), occupant.StudentID)

	released, err := coord.ReleaseRoom(ctx, alloc.ID)
	require.NoError(t, err)
	require.NotNil(t, released.EndDate)

	room1, err := store.GetRoom(ctx, r1.ID)
	require.NoError(t, err)
	require.False(t, room1.Occupied)

	// Free again: the other student's claim now succeeds.
	_, err = coord.ClaimRoom(ctx, 8, r1.ID)
	require.NoError(t, err)
}

func TestGormHistoryAndAvailableRooms(t *testing.T) {
	store := newGormStore(t)
	r1 := seedRoom(t, store, "101")
	r2 := seedRoom(t, store, "102")
	seedRoom(t, store, "201")
	coord := NewCoordinator(store, zap.NewNop())
	query := NewQueryService(store)
	ctx := context.Background()

	a1, err := coord.ClaimRoom(ctx, 7, r1.ID)
	require.NoError(t, err)
	_, err = coord.ReleaseRoom(ctx, a1.ID)
	require.NoError(t, err)
	a2, err := coord.ClaimRoom(ctx, 7, r2.ID)
	require.NoError(t, err)

	history, err := query.ListHistory(ctx, 7)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, a2.ID, history[0].ID)
	require.Equal(t, r2.ID, history[0].Room.ID, "history joins room attributes")

	rooms, err := query.ListAvailableRooms(ctx, RoomFilter{})
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	require.Equal(t, "101", rooms[0].RoomNumber)
	require.Equal(t, "201", rooms[1].RoomNumber)
}

func TestGormDirectory(t *testing.T) {
	store := newGormStore(t)
	r1 := seedRoom(t, store, "101")
	seedRoom(t, store, "102")
	require.NoError(t, store.db.Create(&model.Student{
		FullName: "Dana Aly", NationalID: "900101", Email: "dana@example.com",
		Password: "x", Role: "student",
	}).Error)

	coord := NewCoordinator(store, zap.NewNop())
	directory := NewDirectory(store)
	ctx := context.Background()

	_, err := coord.ClaimRoom(ctx, 1, r1.ID)
	require.NoError(t, err)

	summary, err := directory.Summary(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, summary.TotalRooms)
	require.EqualValues(t, 1, summary.OccupiedRooms)
	require.EqualValues(t, 1, summary.AvailableRooms)
	require.EqualValues(t, 1, summary.ActiveAllocations)
	require.EqualValues(t, 1, summary.TotalStudents)
}
