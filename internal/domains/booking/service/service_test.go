package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"atrium/config"
	otelMocks "atrium/infras/otel/mocks"
	pgMocks "atrium/infras/postgres/mocks"
	bookingMocks "atrium/internal/domains/booking/mocks"
	"atrium/internal/domains/booking/model"
	"atrium/internal/domains/booking/model/dto"
	"atrium/internal/domains/booking/service"
	guestMocks "atrium/internal/domains/guest/mocks"
	roomMocks "atrium/internal/domains/room/mocks"
	roomModel "atrium/internal/domains/room/model"
	cacheMocks "atrium/shared/cache/mocks"
	gDto "atrium/shared/dto"
	"atrium/shared/failure"
)

type fixture struct {
	svc       service.Booking
	repo      *bookingMocks.MockBooking
	roomRepo  *roomMocks.MockRoom
	guestRepo *guestMocks.MockGuest
	cache     *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:      bookingMocks.NewMockBooking(ctrl),
		roomRepo:  roomMocks.NewMockRoom(ctrl),
		guestRepo: guestMocks.NewMockGuest(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.roomRepo, f.guestRepo, pgMocks.NewTransactor(), cfg, f.cache, otelMocks.NewOtel())

	return f
}

func (f *fixture) expectCacheInvalidation() {
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func availableRoom(id string) roomModel.Room {
	return roomModel.Room{ID: id, RoomNumber: "101", RoomType: "double", Price: 100000, Status: roomModel.StatusAvailable}
}

func TestBookingService_Create(t *testing.T) {
	req := dto.CreateBookingRequest{
		GuestID:      "guest-id",
		RoomID:       "room-id",
		CheckInDate:  "2024-01-10",
		CheckOutDate: "2024-01-12",
		TotalAmount:  200000,
		Status:       "confirmed",
	}

	t.Run("successful creation marks started stay occupied", func(t *testing.T) {
		f := newFixture(t)

		f.guestRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		f.roomRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), "room-id").
			Return(availableRoom("room-id"), nil)

		f.repo.EXPECT().
			CountOverlappingTx(gomock.Any(), gomock.Any(), "room-id", gomock.Any(), gomock.Any(), "").
			Return(0, nil)

		f.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, booking model.Booking) error {
				assert.Equal(t, model.StatusConfirmed, booking.Status)
				assert.NotEmpty(t, booking.ID)
				return nil
			})

		// The stay started in 2024, so the room flips to occupied.
		f.roomRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, roomModel.StatusOccupied, fields[roomModel.FieldStatus])
				return nil
			})

		f.expectCacheInvalidation()

		res, err := f.svc.Create(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, "2024-01-10", res.CheckInDate)
		assert.Equal(t, "confirmed", res.Status)
	})

	t.Run("future confirmed stay leaves room untouched", func(t *testing.T) {
		f := newFixture(t)

		futureReq := req
		futureReq.CheckInDate = "2100-01-10"
		futureReq.CheckOutDate = "2100-01-12"

		f.guestRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		f.roomRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), "room-id").
			Return(availableRoom("room-id"), nil)

		f.repo.EXPECT().
			CountOverlappingTx(gomock.Any(), gomock.Any(), "room-id", gomock.Any(), gomock.Any(), "").
			Return(0, nil)

		f.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		f.expectCacheInvalidation()

		_, err := f.svc.Create(context.Background(), futureReq)

		assert.NoError(t, err)
	})

	t.Run("checked-in always occupies", func(t *testing.T) {
		f := newFixture(t)

		checkedInReq := req
		checkedInReq.CheckInDate = "2100-01-10"
		checkedInReq.CheckOutDate = "2100-01-12"
		checkedInReq.Status = "checked-in"

		f.guestRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		f.roomRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), "room-id").
			Return(availableRoom("room-id"), nil)

		f.repo.EXPECT().
			CountOverlappingTx(gomock.Any(), gomock.Any(), "room-id", gomock.Any(), gomock.Any(), "").
			Return(0, nil)

		f.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		f.roomRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, roomModel.StatusOccupied, fields[roomModel.FieldStatus])
				return nil
			})

		f.expectCacheInvalidation()

		_, err := f.svc.Create(context.Background(), checkedInReq)

		assert.NoError(t, err)
	})

	t.Run("guest not found", func(t *testing.T) {
		f := newFixture(t)

		f.guestRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		_, err := f.svc.Create(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("room not found", func(t *testing.T) {
		f := newFixture(t)

		f.guestRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		f.roomRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), "room-id").
			Return(roomModel.Room{}, nil)

		_, err := f.svc.Create(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("occupied room rejected regardless of dates", func(t *testing.T) {
		f := newFixture(t)

		room := availableRoom("room-id")
		room.Status = roomModel.StatusOccupied

		f.guestRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		f.roomRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), "room-id").
			Return(room, nil)

		_, err := f.svc.Create(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("overlapping dates rejected", func(t *testing.T) {
		f := newFixture(t)

		f.guestRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		f.roomRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), "room-id").
			Return(availableRoom("room-id"), nil)

		f.repo.EXPECT().
			CountOverlappingTx(gomock.Any(), gomock.Any(), "room-id", gomock.Any(), gomock.Any(), "").
			Return(1, nil)

		_, err := f.svc.Create(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("check_out before check_in rejected", func(t *testing.T) {
		f := newFixture(t)

		badReq := req
		badReq.CheckInDate = "2024-01-12"
		badReq.CheckOutDate = "2024-01-10"

		_, err := f.svc.Create(context.Background(), badReq)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("insert failure aborts without cache invalidation", func(t *testing.T) {
		f := newFixture(t)

		f.guestRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		f.roomRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), "room-id").
			Return(availableRoom("room-id"), nil)

		f.repo.EXPECT().
			CountOverlappingTx(gomock.Any(), gomock.Any(), "room-id", gomock.Any(), gomock.Any(), "").
			Return(0, nil)

		f.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("database error"))

		_, err := f.svc.Create(context.Background(), req)

		assert.Error(t, err)
	})
}

func TestBookingService_Update(t *testing.T) {
	checkIn := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)

	stored := model.Booking{
		ID:           "booking-id",
		GuestID:      "guest-id",
		RoomID:       "room-id",
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		TotalAmount:  200000,
		Status:       model.StatusCheckedIn,
	}

	t.Run("booking not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{}, nil)

		_, err := f.svc.Update(context.Background(), dto.UpdateBookingRequest{Status: "confirmed"}, "missing-id")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("downgrade to confirmed frees the room without overlap re-check", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(stored, nil)

		f.roomRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), "room-id").
			Return(availableRoom("room-id"), nil)

		f.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusConfirmed, fields[model.FieldStatus])
				assert.Equal(t, checkIn, fields[model.FieldCheckInDate])
				return nil
			})

		f.roomRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, roomModel.StatusAvailable, fields[roomModel.FieldStatus])
				return nil
			})

		f.expectCacheInvalidation()

		res, err := f.svc.Update(context.Background(), dto.UpdateBookingRequest{Status: "confirmed"}, "booking-id")

		assert.NoError(t, err)
		assert.Equal(t, "confirmed", res.Status)
		assert.Equal(t, "2024-01-10", res.CheckInDate)
	})

	t.Run("changed dates trigger overlap check excluding self", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(stored, nil)

		f.roomRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), "room-id").
			Return(availableRoom("room-id"), nil)

		f.repo.EXPECT().
			CountOverlappingTx(gomock.Any(), gomock.Any(), "room-id", gomock.Any(), gomock.Any(), "booking-id").
			Return(1, nil)

		_, err := f.svc.Update(context.Background(), dto.UpdateBookingRequest{CheckOutDate: "2024-01-15"}, "booking-id")

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("room change occupies new room and frees old one", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(stored, nil)

		f.roomRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), "room-2").
			Return(availableRoom("room-2"), nil)

		f.repo.EXPECT().
			CountOverlappingTx(gomock.Any(), gomock.Any(), "room-2", gomock.Any(), gomock.Any(), "booking-id").
			Return(0, nil)

		f.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		gotStatuses := map[string]roomModel.Status{}

		f.roomRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, fields map[string]any, filter gDto.FilterGroup) error {
				_, args := filter.GetWhereClause()
				roomID, _ := args["id"].(string)
				gotStatuses[roomID], _ = fields[roomModel.FieldStatus].(roomModel.Status)
				return nil
			}).
			Times(2)

		f.expectCacheInvalidation()

		_, err := f.svc.Update(context.Background(), dto.UpdateBookingRequest{RoomID: "room-2", Status: "checked-in"}, "booking-id")

		assert.NoError(t, err)
		assert.Equal(t, roomModel.StatusOccupied, gotStatuses["room-2"])
		assert.Equal(t, roomModel.StatusAvailable, gotStatuses["room-id"])
	})

	t.Run("invalid merged dates rejected", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(stored, nil)

		// New check-in lands after the stored check-out.
		_, err := f.svc.Update(context.Background(), dto.UpdateBookingRequest{CheckInDate: "2024-01-20"}, "booking-id")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestBookingService_Cancel(t *testing.T) {
	stored := model.Booking{
		ID:      "booking-id",
		RoomID:  "room-id",
		GuestID: "guest-id",
		Status:  model.StatusConfirmed,
	}

	t.Run("cancel frees the room", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(stored, nil)

		f.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])
				return nil
			})

		f.roomRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, roomModel.StatusAvailable, fields[roomModel.FieldStatus])
				return nil
			})

		f.expectCacheInvalidation()

		assert.NoError(t, f.svc.Cancel(context.Background(), "booking-id"))
	})

	t.Run("repeated cancel still succeeds", func(t *testing.T) {
		f := newFixture(t)

		cancelled := stored
		cancelled.Status = model.StatusCancelled

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(cancelled, nil)

		f.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		f.roomRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		f.expectCacheInvalidation()

		assert.NoError(t, f.svc.Cancel(context.Background(), "booking-id"))
	})

	t.Run("booking not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{}, nil)

		err := f.svc.Cancel(context.Background(), "missing-id")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_Get(t *testing.T) {
	t.Run("cache miss joins guest and room", func(t *testing.T) {
		f := newFixture(t)

		detail := model.Detail{
			Booking: model.Booking{
				ID:      "booking-id",
				GuestID: "guest-id",
				RoomID:  "room-id",
				Status:  model.StatusConfirmed,
			},
			GuestFirstName: "Ada",
			GuestLastName:  "Lovelace",
			RoomNumber:     "101",
			RoomType:       "double",
		}

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		f.repo.EXPECT().
			GetDetail(gomock.Any(), gomock.Any()).
			Return(detail, nil)

		f.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := f.svc.Get(context.Background(), "booking-id")

		assert.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", res.GuestName)
		assert.Equal(t, "101", res.RoomNumber)
	})

	t.Run("booking not found", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		f.repo.EXPECT().
			GetDetail(gomock.Any(), gomock.Any()).
			Return(model.Detail{}, nil)

		_, err := f.svc.Get(context.Background(), "missing-id")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
