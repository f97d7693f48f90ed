package allocation

import (
	"context"

	"hostel_manager/model"
)

// Directory aggregates allocations for administrative oversight. Pure
// reads over current store state.
type Directory struct {
	store InventoryStore
}

func NewDirectory(store InventoryStore) *Directory {
	return &Directory{store: store}
}

func (d *Directory) Summary(ctx context.Context) (Summary, error) {
	total, occupied, err := d.store.CountRooms(ctx)
	if err != nil {
		return Summary{}, err
	}
	students, err := d.store.CountStudents(ctx)
	if err != nil {
		return Summary{}, err
	}
	active, err := d.store.ActiveAllocations(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		TotalRooms:        total,
		OccupiedRooms:     occupied,
		AvailableRooms:    total - occupied,
		ActiveAllocations: int64(len(active)),
		TotalStudents:     students,
	}, nil
}

// ActiveAllocations lists all active allocations joined with their room
// attributes.
func (d *Directory) ActiveAllocations(ctx context.Context) ([]model.Allocation, error) {
	return d.store.ActiveAllocations(ctx)
}
