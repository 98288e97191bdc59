package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"atrium/infras/otel"
	"atrium/infras/postgres"
	"atrium/internal/domains/booking/model"
	gDto "atrium/shared/dto"
	gRepo "atrium/shared/repository"
)

type Booking interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.Detail, error)
	GetAllDetail(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Detail, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	CountOverlappingTx(ctx context.Context, sqltx *sqlx.Tx, roomID string, checkIn, checkOut time.Time, excludeID string) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	detail gRepo.Repository[model.Detail]
	db     *postgres.Connection
	otel   otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		detail:     gRepo.NewRepository[model.Detail](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.Detail, error) {
	return repo.detail.Get(ctx, filter) //nolint:wrapcheck
}

func (repo *repositoryImpl) GetAllDetail(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Detail, error) {
	return repo.detail.GetAll(ctx, params, filter) //nolint:wrapcheck
}

// CountOverlappingTx counts active bookings on the room whose stay range
// overlaps [checkIn, checkOut), inside the caller's transaction so the count
// is covered by the room row lock. excludeID skips the booking being updated.
func (repo *repositoryImpl) CountOverlappingTx(ctx context.Context, sqltx *sqlx.Tx, roomID string, checkIn, checkOut time.Time, excludeID string) (int, error) {
	filters := []any{
		gDto.Filter{
			Field:    model.FieldRoomID,
			Value:    roomID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		},
		gDto.Filter{
			Field:    model.FieldStatus,
			Value:    []string{string(model.StatusConfirmed), string(model.StatusCheckedIn)},
			Operator: gDto.FilterOperatorIn,
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  "overlap_check_out",
			Field:    model.FieldCheckInDate,
			Value:    checkOut,
			Operator: gDto.FilterOperatorLess,
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  "overlap_check_in",
			Field:    model.FieldCheckOutDate,
			Value:    checkIn,
			Operator: gDto.FilterOperatorGreater,
			Table:    model.TableName,
		},
	}

	if excludeID != "" {
		filters = append(filters, gDto.Filter{
			ArgName:  "exclude_id",
			Field:    model.FieldID,
			Value:    excludeID,
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		})
	}

	return repo.CountTx(ctx, sqltx, gDto.FilterGroup{ //nolint:wrapcheck
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	})
}
