package service

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"atrium/config"
	"atrium/infras/otel"
	"atrium/infras/postgres"
	"atrium/internal/domains/booking/model"
	"atrium/internal/domains/booking/model/dto"
	"atrium/internal/domains/booking/repository"
	guestModel "atrium/internal/domains/guest/model"
	guestRepo "atrium/internal/domains/guest/repository"
	roomModel "atrium/internal/domains/room/model"
	roomRepo "atrium/internal/domains/room/repository"
	"atrium/shared"
	"atrium/shared/cache"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	"atrium/shared/failure"
	"atrium/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	cacheRoomPrefix = "room"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingDetailResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Booking
	roomRepo   roomRepo.Room
	guestRepo  guestRepo.Guest
	transactor postgres.Transactor
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	guestRepo guestRepo.Guest,
	transactor postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:       repo,
		roomRepo:   roomRepo,
		guestRepo:  guestRepo,
		transactor: transactor,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

// Create validates room existence, the cached room status, and the booking
// calendar before inserting. All reads and writes happen inside one
// transaction holding a lock on the room row, so two concurrent requests for
// the same room serialize instead of double booking.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := actorFromContext(ctx)

	booking, err := req.ToModel(actor)
	if err != nil {
		return res, err
	}

	guestExists, err := s.guestRepo.Exist(ctx, shared.FilterByID(booking.GuestID, guestModel.FieldID, guestModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if guest exists")

		return res, fmt.Errorf("failed to check if guest exists: %w", err)
	}

	if !guestExists {
		return res, failure.NotFound("guest not found") // nolint:wrapcheck
	}

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		room, txErr := s.roomRepo.GetForUpdateTx(ctx, tx, booking.RoomID)
		if txErr != nil {
			return txErr
		}

		if room.ID == constant.Empty {
			return failure.NotFound("room not found") // nolint:wrapcheck
		}

		if room.Status != roomModel.StatusAvailable {
			return failure.Conflict("room is not available") // nolint:wrapcheck
		}

		overlapping, txErr := s.repo.CountOverlappingTx(ctx, tx, booking.RoomID, booking.CheckInDate, booking.CheckOutDate, constant.Empty)
		if txErr != nil {
			return txErr
		}

		if overlapping > 0 {
			return failure.Conflict("room is already booked for the selected dates") // nolint:wrapcheck
		}

		if txErr = s.repo.InsertTx(ctx, tx, booking); txErr != nil {
			return txErr
		}

		if effect, apply := model.CreateRoomEffect(booking, timezone.Today()); apply {
			return s.applyRoomEffectTx(ctx, tx, effect, actor)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("roomID", booking.RoomID).Msg("failed to create booking")

		return res, err
	}

	res.FromModel(booking)

	s.invalidateBookingCaches(ctx, booking.ID)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAllDetail(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.GetDetail(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// Update persists the merged booking and applies the room-status side effects
// its new status demands. The calendar is re-checked only when the room or the
// stay range changed, excluding the booking itself.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := actorFromContext(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	stored, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if stored.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	updated, err := req.Apply(stored, actor)
	if err != nil {
		return res, err
	}

	scheduleChanged := updated.RoomID != stored.RoomID ||
		!updated.CheckInDate.Equal(stored.CheckInDate) ||
		!updated.CheckOutDate.Equal(stored.CheckOutDate)

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		room, txErr := s.roomRepo.GetForUpdateTx(ctx, tx, updated.RoomID)
		if txErr != nil {
			return txErr
		}

		if room.ID == constant.Empty {
			return failure.NotFound("room not found") // nolint:wrapcheck
		}

		if scheduleChanged {
			overlapping, txErr := s.repo.CountOverlappingTx(ctx, tx, updated.RoomID, updated.CheckInDate, updated.CheckOutDate, updated.ID)
			if txErr != nil {
				return txErr
			}

			if overlapping > 0 {
				return failure.Conflict("room is already booked for the selected dates") // nolint:wrapcheck
			}
		}

		updatedFields := map[string]any{
			model.FieldGuestID:       updated.GuestID,
			model.FieldRoomID:        updated.RoomID,
			model.FieldCheckInDate:   updated.CheckInDate,
			model.FieldCheckOutDate:  updated.CheckOutDate,
			model.FieldTotalAmount:   updated.TotalAmount,
			model.FieldStatus:        updated.Status,
			constant.FieldModifiedAt: updated.ModifiedAt,
			constant.FieldModifiedBy: updated.ModifiedBy,
		}

		if txErr = s.repo.UpdateTx(ctx, tx, updatedFields, filter); txErr != nil {
			return txErr
		}

		for _, effect := range model.UpdateRoomEffects(updated, stored.Status, stored.RoomID) {
			if txErr = s.applyRoomEffectTx(ctx, tx, effect, actor); txErr != nil {
				return txErr
			}
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("bookingID", id).Msg("failed to update booking")

		return res, err
	}

	res.FromModel(updated)

	s.invalidateBookingCaches(ctx, id)

	return res, nil
}

// Cancel flips the booking to cancelled and unconditionally frees its room.
// Cancelling an already cancelled booking succeeds and leaves the same state.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := actorFromContext(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	stored, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if stored.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		updatedFields := map[string]any{
			model.FieldStatus:        model.StatusCancelled,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: actor,
		}

		if txErr := s.repo.UpdateTx(ctx, tx, updatedFields, filter); txErr != nil {
			return txErr
		}

		effect := model.RoomStatusEffect{RoomID: stored.RoomID, Status: roomModel.StatusAvailable}

		return s.applyRoomEffectTx(ctx, tx, effect, actor)
	})
	if err != nil {
		log.Error().Err(err).Str("bookingID", id).Msg("failed to cancel booking")

		return err
	}

	s.invalidateBookingCaches(ctx, id)

	return nil
}

func (s *serviceImpl) applyRoomEffectTx(ctx context.Context, tx *sqlx.Tx, effect model.RoomStatusEffect, actor string) error {
	updatedFields := map[string]any{
		roomModel.FieldStatus:    effect.Status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}

	return s.roomRepo.UpdateTx(ctx, tx, updatedFields, shared.FilterByID(effect.RoomID, roomModel.FieldID, roomModel.TableName)) //nolint:wrapcheck
}

// invalidateBookingCaches drops booking read models and the room caches,
// since booking mutations also rewrite cached room statuses.
func (s *serviceImpl) invalidateBookingCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, cacheRoomPrefix)
	}()
}

func actorFromContext(ctx context.Context) string {
	actor, ok := ctx.Value(constant.ContextKeyActor).(string)
	if !ok || actor == constant.Empty {
		return constant.ActorSystem
	}

	return actor
}
