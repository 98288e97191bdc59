package model

import (
	"fmt"

	"atrium/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID         = "id"
	FieldRoomNumber = "room_number"
	FieldRoomType   = "room_type"
	FieldPrice      = "price"
	FieldStatus     = "status"
)

// Status is the cached occupancy state of a room. It is maintained by
// booking mutations and can lag behind the live booking calendar.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusOccupied    Status = "occupied"
	StatusMaintenance Status = "maintenance"
)

func ParseStatus(value string) (Status, error) {
	switch Status(value) {
	case StatusAvailable, StatusOccupied, StatusMaintenance:
		return Status(value), nil
	default:
		return "", fmt.Errorf("unknown room status: %q", value)
	}
}

type Room struct {
	ID         string `db:"id"`
	RoomNumber string `db:"room_number"`
	RoomType   string `db:"room_type"`
	Price      int64  `db:"price"`
	Status     Status `db:"status"`
	model.Metadata
}
