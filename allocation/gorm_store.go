package allocation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"hostel_manager/model"
)

// GormStore backs the engine with a relational database. The uniqueness
// invariant "one active allocation per student" is enforced by a partial
// unique index so it holds even against concurrent inserts.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates the engine tables and the partial unique indexes the
// claim protocol relies on. The WHERE clause syntax is valid on both
// Postgres and SQLite.
func (s *GormStore) Migrate() error {
	if err := s.db.AutoMigrate(&model.Student{}, &model.Room{}, &model.Allocation{}); err != nil {
		return err
	}
	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_allocations_active_student
			ON allocations (student_id) WHERE end_date IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_allocations_active_room
			ON allocations (room_id) WHERE end_date IS NULL`,
	}
	for _, stmt := range stmts {
		if err := s.db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *GormStore) GetRoom(ctx context.Context, roomID uint) (model.Room, error) {
	var room model.Room
	if err := s.db.WithContext(ctx).First(&room, roomID).Error; err != nil {
		return model.Room{}, s.wrap(err)
	}
	return room, nil
}

func (s *GormStore) GetAllocation(ctx context.Context, allocationID uint) (model.Allocation, error) {
	var alloc model.Allocation
	if err := s.db.WithContext(ctx).First(&alloc, allocationID).Error; err != nil {
		return model.Allocation{}, s.wrap(err)
	}
	return alloc, nil
}

func (s *GormStore) ActiveAllocationByStudent(ctx context.Context, studentID uint) (*model.Allocation, error) {
	return s.activeAllocation(ctx, "student_id = ?", studentID)
}

func (s *GormStore) ActiveAllocationByRoom(ctx context.Context, roomID uint) (*model.Allocation, error) {
	return s.activeAllocation(ctx, "room_id = ?", roomID)
}

func (s *GormStore) activeAllocation(ctx context.Context, cond string, arg uint) (*model.Allocation, error) {
	var alloc model.Allocation
	err := s.db.WithContext(ctx).
		Preload("Room").
		Where(cond, arg).
		Where("end_date IS NULL").
		First(&alloc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, s.wrap(err)
	}
	return &alloc, nil
}

func (s *GormStore) History(ctx context.Context, studentID uint) ([]model.Allocation, error) {
	var allocs []model.Allocation
	err := s.db.WithContext(ctx).
		Preload("Room").
		Where("student_id = ?", studentID).
		Order("start_date DESC, id DESC").
		Find(&allocs).Error
	if err != nil {
		return nil, s.wrap(err)
	}
	return allocs, nil
}

func (s *GormStore) AvailableRooms(ctx context.Context, filter RoomFilter) ([]model.Room, error) {
	condition := s.db.WithContext(ctx).
		Model(&model.Room{}).
		Where("occupied = ?", false)
	if filter.Floor != nil {
		condition = condition.Where("floor = ?", *filter.Floor)
	}
	if filter.Type != nil {
		condition = condition.Where("type = ?", *filter.Type)
	}
	if filter.MaxPrice != nil {
		condition = condition.Where("price_per_month <= ?", *filter.MaxPrice)
	}

	var rooms []model.Room
	if err := condition.Order("room_number ASC").Find(&rooms).Error; err != nil {
		return nil, s.wrap(err)
	}
	return rooms, nil
}

// ClaimOccupancy is the serialization point between competing claims for
// the same room: a conditional UPDATE, not a blind write. RowsAffected
// zero means a concurrent caller got there first (or the room is gone).
func (s *GormStore) ClaimOccupancy(ctx context.Context, roomID uint) error {
	result := s.db.WithContext(ctx).
		Model(&model.Room{}).
		Where("id = ? AND occupied = ?", roomID, false).
		Update("occupied", true)
	if result.Error != nil {
		return s.wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := s.db.WithContext(ctx).Model(&model.Room{}).Where("id = ?", roomID).Count(&count).Error; err != nil {
			return s.wrap(err)
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrRoomUnavailable
	}
	return nil
}

func (s *GormStore) FreeOccupancy(ctx context.Context, roomID uint) error {
	result := s.db.WithContext(ctx).
		Model(&model.Room{}).
		Where("id = ?", roomID).
		Update("occupied", false)
	if result.Error != nil {
		return s.wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) InsertActiveAllocation(ctx context.Context, alloc *model.Allocation) error {
	if err := s.db.WithContext(ctx).Create(alloc).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyAllocated
		}
		return s.wrap(err)
	}
	return nil
}

// CloseAllocation sets end_date only when still NULL, so a replayed
// release cannot move an already-set end date.
func (s *GormStore) CloseAllocation(ctx context.Context, allocationID uint, endDate time.Time) error {
	result := s.db.WithContext(ctx).
		Model(&model.Allocation{}).
		Where("id = ? AND end_date IS NULL", allocationID).
		Update("end_date", endDate)
	if result.Error != nil {
		return s.wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := s.db.WithContext(ctx).Model(&model.Allocation{}).Where("id = ?", allocationID).Count(&count).Error; err != nil {
			return s.wrap(err)
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrAlreadyReleased
	}
	return nil
}

func (s *GormStore) ActiveAllocations(ctx context.Context) ([]model.Allocation, error) {
	var allocs []model.Allocation
	err := s.db.WithContext(ctx).
		Preload("Room").
		Where("end_date IS NULL").
		Order("start_date DESC, id DESC").
		Find(&allocs).Error
	if err != nil {
		return nil, s.wrap(err)
	}
	return allocs, nil
}

func (s *GormStore) CountRooms(ctx context.Context) (int64, int64, error) {
	var total, occupied int64
	if err := s.db.WithContext(ctx).Model(&model.Room{}).Count(&total).Error; err != nil {
		return 0, 0, s.wrap(err)
	}
	if err := s.db.WithContext(ctx).Model(&model.Room{}).Where("occupied = ?", true).Count(&occupied).Error; err != nil {
		return 0, 0, s.wrap(err)
	}
	return total, occupied, nil
}

func (s *GormStore) CountStudents(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Student{}).Where("role = ?", "student").Count(&count).Error; err != nil {
		return 0, s.wrap(err)
	}
	return count, nil
}

func (s *GormStore) wrap(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

// isUniqueViolation recognizes a partial-unique-index conflict on both
// the Postgres driver and the SQLite driver used in tests.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
