package dto

import (
	"strings"

	"github.com/google/uuid"

	"atrium/internal/domains/booking/model"
	"atrium/shared"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	"atrium/shared/failure"
	gModel "atrium/shared/model"
	"atrium/shared/timezone"
)

type CreateBookingRequest struct {
	GuestID      string `json:"guest_id"       validate:"required"`
	RoomID       string `json:"room_id"        validate:"required"`
	CheckInDate  string `json:"check_in_date"  validate:"required,dateonly"`
	CheckOutDate string `json:"check_out_date" validate:"required,dateonly"`
	TotalAmount  int64  `json:"total_amount"   validate:"omitempty,min=0"`
	Status       string `json:"status"         validate:"omitempty,oneof=confirmed checked-in"`
}

func (c *CreateBookingRequest) ToModel(actor string) (model.Booking, error) {
	checkIn, err := timezone.Parse(constant.DateOnlyFormat, c.CheckInDate)
	if err != nil {
		return model.Booking{}, failure.BadRequestFromString("check_in_date must be a valid date (YYYY-MM-DD)")
	}

	checkOut, err := timezone.Parse(constant.DateOnlyFormat, c.CheckOutDate)
	if err != nil {
		return model.Booking{}, failure.BadRequestFromString("check_out_date must be a valid date (YYYY-MM-DD)")
	}

	if !checkOut.After(checkIn) {
		return model.Booking{}, failure.BadRequestFromString("check_out_date must be after check_in_date")
	}

	status := model.StatusConfirmed
	if c.Status != "" {
		status = model.Status(c.Status)
	}

	return model.Booking{
		ID:           uuid.NewString(),
		GuestID:      c.GuestID,
		RoomID:       c.RoomID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		TotalAmount:  c.TotalAmount,
		Status:       status,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}, nil
}

type UpdateBookingRequest struct {
	GuestID      string `json:"guest_id"       validate:"omitempty"`
	RoomID       string `json:"room_id"        validate:"omitempty"`
	CheckInDate  string `json:"check_in_date"  validate:"omitempty,dateonly"`
	CheckOutDate string `json:"check_out_date" validate:"omitempty,dateonly"`
	TotalAmount  *int64 `json:"total_amount"   validate:"omitempty,min=0"`
	Status       string `json:"status"         validate:"omitempty,oneof=confirmed checked-in checked-out cancelled"`
}

// Apply merges the request onto the stored booking and returns the booking as
// it should be persisted. Fields left empty keep their stored values.
func (u *UpdateBookingRequest) Apply(stored model.Booking, actor string) (model.Booking, error) {
	updated := stored

	if u.GuestID != "" {
		updated.GuestID = u.GuestID
	}

	if u.RoomID != "" {
		updated.RoomID = u.RoomID
	}

	if u.CheckInDate != "" {
		checkIn, err := timezone.Parse(constant.DateOnlyFormat, u.CheckInDate)
		if err != nil {
			return model.Booking{}, failure.BadRequestFromString("check_in_date must be a valid date (YYYY-MM-DD)")
		}

		updated.CheckInDate = checkIn
	}

	if u.CheckOutDate != "" {
		checkOut, err := timezone.Parse(constant.DateOnlyFormat, u.CheckOutDate)
		if err != nil {
			return model.Booking{}, failure.BadRequestFromString("check_out_date must be a valid date (YYYY-MM-DD)")
		}

		updated.CheckOutDate = checkOut
	}

	if !updated.CheckOutDate.After(updated.CheckInDate) {
		return model.Booking{}, failure.BadRequestFromString("check_out_date must be after check_in_date")
	}

	if u.TotalAmount != nil {
		updated.TotalAmount = *u.TotalAmount
	}

	if u.Status != "" {
		updated.Status = model.Status(u.Status)
	}

	updated.ModifiedAt = timezone.Now()
	updated.ModifiedBy = actor

	return updated, nil
}

type BookingResponse struct {
	ID           string `json:"id"`
	GuestID      string `json:"guest_id"`
	RoomID       string `json:"room_id"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	TotalAmount  int64  `json:"total_amount"`
	Status       string `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.GuestID = model.GuestID
	r.RoomID = model.RoomID
	r.CheckInDate = timezone.Format(model.CheckInDate, constant.DateOnlyFormat)
	r.CheckOutDate = timezone.Format(model.CheckOutDate, constant.DateOnlyFormat)
	r.TotalAmount = model.TotalAmount
	r.Status = string(model.Status)
	r.Metadata.FromModel(model.Metadata)
}

type BookingDetailResponse struct {
	BookingResponse
	GuestName  string `json:"guest_name"`
	RoomNumber string `json:"room_number"`
	RoomType   string `json:"room_type"`
}

func (r *BookingDetailResponse) FromModel(detail model.Detail) {
	r.BookingResponse.FromModel(detail.Booking)
	r.GuestName = strings.TrimSpace(detail.GuestFirstName + " " + detail.GuestLastName)
	r.RoomNumber = detail.RoomNumber
	r.RoomType = detail.RoomType
}

type GetBookingsResponse struct {
	Bookings  []BookingDetailResponse `json:"bookings"`
	TotalPage int                     `json:"total_page"`
	TotalData int                     `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Detail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingDetailResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
