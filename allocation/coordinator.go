package allocation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hostel_manager/model"
)

// AvailabilityEvent notifies listeners (websocket broadcast) that a
// room's availability changed.
type AvailabilityEvent struct {
	RoomID     uint   `json:"roomId"`
	RoomNumber string `json:"roomNumber"`
	Occupied   bool   `json:"occupied"`
}

// Coordinator is the only writer of rooms and allocations. Claim and
// release keep the occupancy flag and the active-allocation rows
// consistent under concurrent callers without a multi-record
// transaction: an optimistic compare-and-set on the room plus a
// compensating rollback when the student-uniqueness check loses.
type Coordinator struct {
	store  InventoryStore
	logger *zap.Logger

	// OnAvailabilityChange, when set, runs after every committed
	// occupancy change. Failures in the listener do not affect the
	// operation's outcome.
	OnAvailabilityChange func(AvailabilityEvent)
}

func NewCoordinator(store InventoryStore, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{store: store, logger: logger}
}

// ClaimRoom grants the room to the student.
//
// Steps: precondition read, compare-and-set on the room, allocation
// insert, and a compensating FreeOccupancy when the insert loses the
// student-uniqueness race. A row is never left behind on failure, and a
// room is never left occupied without a backing allocation past the
// compensation step.
func (b *Coordinator) ClaimRoom(ctx context.Context, studentID, roomID uint) (*model.Allocation, error) {
	if studentID == 0 {
		return nil, ErrNotAuthenticated
	}

	existing, err := b.store.ActiveAllocationByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyAllocated
	}

	if err := b.store.ClaimOccupancy(ctx, roomID); err != nil {
		return nil, err
	}

	alloc := &model.Allocation{
		PublicCode: newBookingCode(),
		StudentID:  studentID,
		RoomID:     roomID,
		StartDate:  time.Now(),
	}
	if err := b.store.InsertActiveAllocation(ctx, alloc); err != nil {
		// Compensate: the room was flipped in step 2 but no allocation
		// backs it. Roll the flag back before reporting the failure.
		if ferr := b.store.FreeOccupancy(ctx, roomID); ferr != nil {
			b.logger.Error("compensation failed, room left occupied without allocation",
				zap.Uint("roomId", roomID),
				zap.Uint("studentId", studentID),
				zap.Error(ferr))
		}
		if errors.Is(err, ErrAlreadyAllocated) {
			return nil, ErrAlreadyAllocated
		}
		return nil, err
	}

	b.logger.Info("room claimed",
		zap.Uint("studentId", studentID),
		zap.Uint("roomId", roomID),
		zap.String("bookingCode", alloc.PublicCode))
	b.notify(ctx, roomID, true)

	return alloc, nil
}

// ReleaseRoom closes the allocation and frees the room, in that order:
// the room becomes claimable only after the allocation is durably
// closed, so a concurrent claim can never race a still-active
// allocation. Safe for at-least-once callers; a replay gets
// ErrAlreadyReleased with the store unchanged.
func (b *Coordinator) ReleaseRoom(ctx context.Context, allocationID uint) (*model.Allocation, error) {
	alloc, err := b.store.GetAllocation(ctx, allocationID)
	if err != nil {
		return nil, err
	}
	if alloc.EndDate != nil {
		return nil, ErrAlreadyReleased
	}

	endDate := time.Now()
	if err := b.store.CloseAllocation(ctx, allocationID, endDate); err != nil {
		return nil, err
	}
	if err := b.store.FreeOccupancy(ctx, alloc.RoomID); err != nil {
		// The allocation is closed but the room still reads occupied.
		// A replay stops at the released guard above, so the occupancy
		// audit is what surfaces this state to an operator.
		b.logger.Error("allocation closed but room not freed",
			zap.Uint("allocationId", allocationID),
			zap.Uint("roomId", alloc.RoomID),
			zap.Error(err))
		return nil, err
	}

	alloc.EndDate = &endDate
	b.logger.Info("room released",
		zap.Uint("allocationId", allocationID),
		zap.Uint("roomId", alloc.RoomID))
	b.notify(ctx, alloc.RoomID, false)

	return &alloc, nil
}

func (b *Coordinator) notify(ctx context.Context, roomID uint, occupied bool) {
	if b.OnAvailabilityChange == nil {
		return
	}
	room, err := b.store.GetRoom(ctx, roomID)
	if err != nil {
		b.logger.Warn("availability notification skipped", zap.Uint("roomId", roomID), zap.Error(err))
		return
	}
	b.OnAvailabilityChange(AvailabilityEvent{
		RoomID:     room.ID,
		RoomNumber: room.RoomNumber,
		Occupied:   occupied,
	})
}

func newBookingCode() string {
	return "BKG-" + strings.ToUpper(uuid.New().String()[:8])
}
