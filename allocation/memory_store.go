package allocation

import (
	"context"
	"sort"
	"sync"
	"time"

	"hostel_manager/model"
)

// MemoryStore keeps the inventory in process memory behind one mutex.
// The mutex doubles as the mutual-exclusion map the claim protocol needs
// when no database constraint is available; it is also what the engine
// tests run against.
type MemoryStore struct {
	mu          sync.Mutex
	rooms       map[uint]model.Room
	allocations map[uint]model.Allocation
	students    map[uint]model.Student
	nextAllocID uint
	nextRoomID  uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms:       map[uint]model.Room{},
		allocations: map[uint]model.Allocation{},
		students:    map[uint]model.Student{},
		nextAllocID: 1,
		nextRoomID:  1,
	}
}

// AddRoom seeds a room and returns its assigned ID.
func (s *MemoryStore) AddRoom(room model.Room) uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	if room.ID == 0 {
		room.ID = s.nextRoomID
	}
	if room.ID >= s.nextRoomID {
		s.nextRoomID = room.ID + 1
	}
	s.rooms[room.ID] = room
	return room.ID
}

// AddStudent seeds a student profile for directory counts.
func (s *MemoryStore) AddStudent(student model.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students[student.ID] = student
}

func (s *MemoryStore) GetRoom(_ context.Context, roomID uint) (model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[roomID]
	if !ok {
		return model.Room{}, ErrNotFound
	}
	return room, nil
}

func (s *MemoryStore) GetAllocation(_ context.Context, allocationID uint) (model.Allocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	alloc, ok := s.allocations[allocationID]
	if !ok {
		return model.Allocation{}, ErrNotFound
	}
	return alloc, nil
}

func (s *MemoryStore) ActiveAllocationByStudent(_ context.Context, studentID uint) (*model.Allocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, alloc := range s.allocations {
		if alloc.StudentID == studentID && alloc.EndDate == nil {
			found := alloc
			found.Room = s.rooms[alloc.RoomID]
			return &found, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) ActiveAllocationByRoom(_ context.Context, roomID uint) (*model.Allocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, alloc := range s.allocations {
		if alloc.RoomID == roomID && alloc.EndDate == nil {
			found := alloc
			found.Room = s.rooms[alloc.RoomID]
			return &found, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) History(_ context.Context, studentID uint) ([]model.Allocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var history []model.Allocation
	for _, alloc := range s.allocations {
		if alloc.StudentID == studentID {
			alloc.Room = s.rooms[alloc.RoomID]
			history = append(history, alloc)
		}
	}
	sort.Slice(history, func(i, j int) bool {
		if !history[i].StartDate.Equal(history[j].StartDate) {
			return history[i].StartDate.After(history[j].StartDate)
		}
		return history[i].ID > history[j].ID
	})
	return history, nil
}

func (s *MemoryStore) AvailableRooms(_ context.Context, filter RoomFilter) ([]model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rooms []model.Room
	for _, room := range s.rooms {
		if room.Occupied {
			continue
		}
		if filter.Floor != nil && room.Floor != *filter.Floor {
			continue
		}
		if filter.Type != nil && string(room.Type) != *filter.Type {
			continue
		}
		if filter.MaxPrice != nil && room.PricePerMonth > *filter.MaxPrice {
			continue
		}
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].RoomNumber < rooms[j].RoomNumber
	})
	return rooms, nil
}

func (s *MemoryStore) ClaimOccupancy(_ context.Context, roomID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[roomID]
	if !ok {
		return ErrNotFound
	}
	if room.Occupied {
		return ErrRoomUnavailable
	}
	room.Occupied = true
	s.rooms[roomID] = room
	return nil
}

func (s *MemoryStore) FreeOccupancy(_ context.Context, roomID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[roomID]
	if !ok {
		return ErrNotFound
	}
	room.Occupied = false
	s.rooms[roomID] = room
	return nil
}

func (s *MemoryStore) InsertActiveAllocation(_ context.Context, alloc *model.Allocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.allocations {
		if existing.StudentID == alloc.StudentID && existing.EndDate == nil {
			return ErrAlreadyAllocated
		}
	}
	alloc.ID = s.nextAllocID
	s.nextAllocID++
	alloc.CreatedAt = time.Now()
	alloc.UpdatedAt = alloc.CreatedAt
	s.allocations[alloc.ID] = *alloc
	return nil
}

func (s *MemoryStore) CloseAllocation(_ context.Context, allocationID uint, endDate time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	alloc, ok := s.allocations[allocationID]
	if !ok {
		return ErrNotFound
	}
	if alloc.EndDate != nil {
		return ErrAlreadyReleased
	}
	alloc.EndDate = &endDate
	alloc.UpdatedAt = time.Now()
	s.allocations[allocationID] = alloc
	return nil
}

func (s *MemoryStore) ActiveAllocations(_ context.Context) ([]model.Allocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var active []model.Allocation
	for _, alloc := range s.allocations {
		if alloc.EndDate == nil {
			alloc.Room = s.rooms[alloc.RoomID]
			active = append(active, alloc)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		if !active[i].StartDate.Equal(active[j].StartDate) {
			return active[i].StartDate.After(active[j].StartDate)
		}
		return active[i].ID > active[j].ID
	})
	return active, nil
}

func (s *MemoryStore) CountRooms(_ context.Context) (int64, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var occupied int64
	for _, room := range s.rooms {
		if room.Occupied {
			occupied++
		}
	}
	return int64(len(s.rooms)), occupied, nil
}

func (s *MemoryStore) CountStudents(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, student := range s.students {
		if student.Role == "student" {
			count++
		}
	}
	return count, nil
}
