package model

import (
	"fmt"
	"time"

	roomModel "atrium/internal/domains/room/model"
	"atrium/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldGuestID      = "guest_id"
	FieldRoomID       = "room_id"
	FieldCheckInDate  = "check_in_date"
	FieldCheckOutDate = "check_out_date"
	FieldTotalAmount  = "total_amount"
	FieldStatus       = "status"
)

// Status is the lifecycle state of a booking. Only confirmed and checked-in
// bookings occupy calendar capacity.
type Status string

const (
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked-in"
	StatusCheckedOut Status = "checked-out"
	StatusCancelled  Status = "cancelled"
)

func ParseStatus(value string) (Status, error) {
	switch Status(value) {
	case StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled:
		return Status(value), nil
	default:
		return "", fmt.Errorf("unknown booking status: %q", value)
	}
}

// Active reports whether the booking holds its room's dates.
func (s Status) Active() bool {
	return s == StatusConfirmed || s == StatusCheckedIn
}

type Booking struct {
	ID           string    `db:"id"`
	GuestID      string    `db:"guest_id"`
	RoomID       string    `db:"room_id"`
	CheckInDate  time.Time `db:"check_in_date"`
	CheckOutDate time.Time `db:"check_out_date"`
	TotalAmount  int64     `db:"total_amount"`
	Status       Status    `db:"status"`
	model.Metadata
}

// Detail is a booking joined with the guest and room it references, used by
// the read endpoints.
type Detail struct {
	Booking
	GuestFirstName string `db:"guest_first_name" table:"guests" column:"first_name"`
	GuestLastName  string `db:"guest_last_name"  table:"guests" column:"last_name"`
	RoomNumber     string `db:"room_number"      table:"rooms"`
	RoomType       string `db:"room_type"        table:"rooms"`
}

func (Detail) GetJoinQuery() string {
	return "JOIN guests ON guests.id = bookings.guest_id JOIN rooms ON rooms.id = bookings.room_id"
}

// Overlaps reports whether the half-open stay ranges [aIn, aOut) and
// [bIn, bOut) share at least one night. Ranges that only touch at a
// boundary do not overlap.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && aOut.After(bIn)
}

// RoomStatusEffect is a cached room-status write a booking mutation must
// apply in the same transaction.
type RoomStatusEffect struct {
	RoomID string
	Status roomModel.Status
}

// CreateRoomEffect decides whether inserting the booking marks its room
// occupied: a checked-in booking always does; a confirmed booking does only
// when its stay has already started as of today.
func CreateRoomEffect(booking Booking, today time.Time) (RoomStatusEffect, bool) {
	if booking.Status == StatusCheckedIn || (booking.Status == StatusConfirmed && !booking.CheckInDate.After(today)) {
		return RoomStatusEffect{RoomID: booking.RoomID, Status: roomModel.StatusOccupied}, true
	}

	return RoomStatusEffect{}, false
}

// UpdateRoomEffects maps the booking's new status to the room-status writes
// it demands. prevStatus and prevRoomID describe the booking before the
// update; updated carries the persisted values.
func UpdateRoomEffects(updated Booking, prevStatus Status, prevRoomID string) []RoomStatusEffect {
	switch updated.Status {
	case StatusCheckedIn:
		effects := []RoomStatusEffect{{RoomID: updated.RoomID, Status: roomModel.StatusOccupied}}
		if prevRoomID != updated.RoomID {
			effects = append(effects, RoomStatusEffect{RoomID: prevRoomID, Status: roomModel.StatusAvailable})
		}

		return effects
	case StatusCheckedOut, StatusCancelled:
		return []RoomStatusEffect{{RoomID: updated.RoomID, Status: roomModel.StatusAvailable}}
	case StatusConfirmed:
		// A checked-in guest moving back to confirmed releases the room.
		if prevStatus == StatusCheckedIn {
			return []RoomStatusEffect{{RoomID: prevRoomID, Status: roomModel.StatusAvailable}}
		}
	}

	return nil
}
