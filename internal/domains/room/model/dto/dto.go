package dto

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"atrium/internal/domains/room/model"
	"atrium/shared"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	"atrium/shared/failure"
	gModel "atrium/shared/model"
	"atrium/shared/timezone"
)

type CreateRoomRequest struct {
	RoomNumber string `json:"room_number" validate:"required,max=20"`
	RoomType   string `json:"room_type"   validate:"required,max=50"`
	Price      int64  `json:"price"       validate:"required,min=0"`
	Status     string `json:"status"      validate:"omitempty,oneof=available occupied maintenance"`
}

func (c *CreateRoomRequest) ToModel(actor string) model.Room {
	status := model.StatusAvailable
	if c.Status != "" {
		status = model.Status(c.Status)
	}

	return model.Room{
		ID:         uuid.NewString(),
		RoomNumber: c.RoomNumber,
		RoomType:   c.RoomType,
		Price:      c.Price,
		Status:     status,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

type UpdateRoomRequest struct {
	RoomNumber string `db:"room_number" json:"room_number" validate:"omitempty,max=20"`
	RoomType   string `db:"room_type"   json:"room_type"   validate:"omitempty,max=50"`
	Price      *int64 `db:"price"       json:"price"       validate:"omitempty,min=0"`
	Status     string `db:"status"      json:"status"      validate:"omitempty,oneof=available occupied maintenance"`
}

type RoomResponse struct {
	ID         string `json:"id"`
	RoomNumber string `json:"room_number"`
	RoomType   string `json:"room_type"`
	Price      int64  `json:"price"`
	Status     string `json:"status"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.RoomType = model.RoomType
	r.Price = model.Price
	r.Status = string(model.Status)
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

// AvailableRoomsQuery carries the optional stay window of an availability
// lookup. Zero-valued dates mean the caller asked for the cached view.
type AvailableRoomsQuery struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func (q *AvailableRoomsQuery) HasRange() bool {
	return !q.CheckIn.IsZero() && !q.CheckOut.IsZero()
}

// FromRequest parses check_in/check_out query parameters. Both must be given
// together or not at all.
func (q *AvailableRoomsQuery) FromRequest(r *http.Request) error {
	checkIn := r.URL.Query().Get(constant.RequestParamCheckIn)
	checkOut := r.URL.Query().Get(constant.RequestParamCheckOut)

	if checkIn == "" && checkOut == "" {
		return nil
	}

	if checkIn == "" || checkOut == "" {
		return failure.BadRequestFromString("check_in and check_out must be provided together")
	}

	parsedIn, err := timezone.Parse(constant.DateOnlyFormat, checkIn)
	if err != nil {
		return failure.BadRequestFromString("check_in must be a valid date (YYYY-MM-DD)")
	}

	parsedOut, err := timezone.Parse(constant.DateOnlyFormat, checkOut)
	if err != nil {
		return failure.BadRequestFromString("check_out must be a valid date (YYYY-MM-DD)")
	}

	if !parsedOut.After(parsedIn) {
		return failure.BadRequestFromString("check_out must be after check_in")
	}

	q.CheckIn = parsedIn
	q.CheckOut = parsedOut

	return nil
}

type AvailableRoomsResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

func (r *AvailableRoomsResponse) FromModels(models []model.Room) {
	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
