package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/classedgee/scheduler-api/internal/models"
)

// RoomRepository provides read access to the room inventory.
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository creates a new room repository.
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// ListAvailable returns schedulable rooms, optionally narrowed by building,
// ordered by room number for deterministic search enumeration.
func (r *RoomRepository) ListAvailable(ctx context.Context, filter models.RoomFilter) ([]models.Room, error) {
	base := `SELECT id, room_number, building_id, capacity, room_type, status, created_at, updated_at
FROM rooms WHERE status = $1`
	args := []interface{}{models.RoomStatusAvailable}

	var conditions []string
	if filter.BuildingID != "" {
		conditions = append(conditions, fmt.Sprintf("building_id = $%d", len(args)+1))
		args = append(args, filter.BuildingID)
	}
	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("room_type = $%d", len(args)+1))
		args = append(args, filter.Type)
	}
	query := base
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY room_number ASC"

	var rooms []models.Room
	if err := r.db.SelectContext(ctx, &rooms, query, args...); err != nil {
		return nil, fmt.Errorf("list available rooms: %w", err)
	}
	return rooms, nil
}

// FindByID loads a room by id.
func (r *RoomRepository) FindByID(ctx context.Context, id string) (*models.Room, error) {
	const query = `SELECT id, room_number, building_id, capacity, room_type, status, created_at, updated_at
FROM rooms WHERE id = $1`
	var room models.Room
	if err := r.db.GetContext(ctx, &room, query, id); err != nil {
		return nil, err
	}
	return &room, nil
}
