package models

import "time"

// RoomStatus describes whether a room can be scheduled.
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusMaintenance RoomStatus = "maintenance"
	RoomStatusRetired     RoomStatus = "retired"
)

// RoomType categorises teaching spaces.
type RoomType string

const (
	RoomTypeClassroom  RoomType = "classroom"
	RoomTypeLab        RoomType = "lab"
	RoomTypeSeminar    RoomType = "seminar"
	RoomTypeAuditorium RoomType = "auditorium"
)

// Room is a teaching space in the room inventory.
type Room struct {
	ID         string     `db:"id" json:"id"`
	RoomNumber string     `db:"room_number" json:"room_number"`
	BuildingID *string    `db:"building_id" json:"building_id,omitempty"`
	Capacity   int        `db:"capacity" json:"capacity"`
	Type       RoomType   `db:"room_type" json:"room_type"`
	Status     RoomStatus `db:"status" json:"status"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// RoomFilter narrows room listings.
type RoomFilter struct {
	BuildingID string
	Status     RoomStatus
	Type       RoomType
}
