package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"atrium/internal/domains/booking/model"
	roomModel "atrium/internal/domains/room/model"
)

func date(day int) time.Time {
	return time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                   string
		aIn, aOut, bIn, bOut   int
		expected               bool
	}{
		{name: "fully contained", aIn: 10, aOut: 12, bIn: 9, bOut: 14, expected: true},
		{name: "partial overlap at end", aIn: 10, aOut: 12, bIn: 11, bOut: 13, expected: true},
		{name: "identical range", aIn: 10, aOut: 12, bIn: 10, bOut: 12, expected: true},
		{name: "checkout touches checkin", aIn: 10, aOut: 12, bIn: 12, bOut: 14, expected: false},
		{name: "checkin touches checkout", aIn: 12, aOut: 14, bIn: 10, bOut: 12, expected: false},
		{name: "disjoint before", aIn: 1, aOut: 3, bIn: 10, bOut: 12, expected: false},
		{name: "disjoint after", aIn: 20, aOut: 22, bIn: 10, bOut: 12, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.Overlaps(date(tt.aIn), date(tt.aOut), date(tt.bIn), date(tt.bOut))
			assert.Equal(t, tt.expected, got)

			// The predicate is symmetric.
			assert.Equal(t, tt.expected, model.Overlaps(date(tt.bIn), date(tt.bOut), date(tt.aIn), date(tt.aOut)))
		})
	}
}

func TestStatus_Active(t *testing.T) {
	assert.True(t, model.StatusConfirmed.Active())
	assert.True(t, model.StatusCheckedIn.Active())
	assert.False(t, model.StatusCheckedOut.Active())
	assert.False(t, model.StatusCancelled.Active())
}

func TestParseStatus(t *testing.T) {
	status, err := model.ParseStatus("checked-in")
	assert.NoError(t, err)
	assert.Equal(t, model.StatusCheckedIn, status)

	_, err = model.ParseStatus("checkedin")
	assert.Error(t, err)
}

func TestCreateRoomEffect(t *testing.T) {
	today := date(11)

	tests := []struct {
		name       string
		booking    model.Booking
		wantApply  bool
		wantStatus roomModel.Status
	}{
		{
			name:       "checked-in always occupies",
			booking:    model.Booking{RoomID: "room-1", Status: model.StatusCheckedIn, CheckInDate: date(20)},
			wantApply:  true,
			wantStatus: roomModel.StatusOccupied,
		},
		{
			name:       "confirmed stay already started",
			booking:    model.Booking{RoomID: "room-1", Status: model.StatusConfirmed, CheckInDate: date(10)},
			wantApply:  true,
			wantStatus: roomModel.StatusOccupied,
		},
		{
			name:       "confirmed stay starting today",
			booking:    model.Booking{RoomID: "room-1", Status: model.StatusConfirmed, CheckInDate: date(11)},
			wantApply:  true,
			wantStatus: roomModel.StatusOccupied,
		},
		{
			name:      "confirmed future stay leaves room untouched",
			booking:   model.Booking{RoomID: "room-1", Status: model.StatusConfirmed, CheckInDate: date(12)},
			wantApply: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			effect, apply := model.CreateRoomEffect(tt.booking, today)

			assert.Equal(t, tt.wantApply, apply)
			if apply {
				assert.Equal(t, tt.booking.RoomID, effect.RoomID)
				assert.Equal(t, tt.wantStatus, effect.Status)
			}
		})
	}
}

func TestUpdateRoomEffects(t *testing.T) {
	tests := []struct {
		name       string
		updated    model.Booking
		prevStatus model.Status
		prevRoomID string
		expected   []model.RoomStatusEffect
	}{
		{
			name:       "check-in occupies new room",
			updated:    model.Booking{RoomID: "room-1", Status: model.StatusCheckedIn},
			prevStatus: model.StatusConfirmed,
			prevRoomID: "room-1",
			expected: []model.RoomStatusEffect{
				{RoomID: "room-1", Status: roomModel.StatusOccupied},
			},
		},
		{
			name:       "check-in with room change frees the old room",
			updated:    model.Booking{RoomID: "room-2", Status: model.StatusCheckedIn},
			prevStatus: model.StatusCheckedIn,
			prevRoomID: "room-1",
			expected: []model.RoomStatusEffect{
				{RoomID: "room-2", Status: roomModel.StatusOccupied},
				{RoomID: "room-1", Status: roomModel.StatusAvailable},
			},
		},
		{
			name:       "check-out frees the room",
			updated:    model.Booking{RoomID: "room-1", Status: model.StatusCheckedOut},
			prevStatus: model.StatusCheckedIn,
			prevRoomID: "room-1",
			expected: []model.RoomStatusEffect{
				{RoomID: "room-1", Status: roomModel.StatusAvailable},
			},
		},
		{
			name:       "cancel frees the room",
			updated:    model.Booking{RoomID: "room-1", Status: model.StatusCancelled},
			prevStatus: model.StatusConfirmed,
			prevRoomID: "room-1",
			expected: []model.RoomStatusEffect{
				{RoomID: "room-1", Status: roomModel.StatusAvailable},
			},
		},
		{
			name:       "downgrade from checked-in to confirmed frees the room",
			updated:    model.Booking{RoomID: "room-1", Status: model.StatusConfirmed},
			prevStatus: model.StatusCheckedIn,
			prevRoomID: "room-1",
			expected: []model.RoomStatusEffect{
				{RoomID: "room-1", Status: roomModel.StatusAvailable},
			},
		},
		{
			name:       "confirmed to confirmed is a no-op",
			updated:    model.Booking{RoomID: "room-1", Status: model.StatusConfirmed},
			prevStatus: model.StatusConfirmed,
			prevRoomID: "room-1",
			expected:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.UpdateRoomEffects(tt.updated, tt.prevStatus, tt.prevRoomID)
			assert.Equal(t, tt.expected, got)
		})
	}
}
