package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"atrium/infras/otel"
	"atrium/infras/postgres"
	"atrium/internal/domains/room/model"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	"atrium/shared/logger"
	gRepo "atrium/shared/repository"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, id string) (model.Room, error)
	GetAllAvailableBetween(ctx context.Context, checkIn, checkOut time.Time) ([]model.Room, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

const roomColumns = "id, room_number, room_type, price, status, created_at, modified_at, created_by, modified_by"

// GetForUpdateTx loads a room inside the transaction and takes a row lock on
// it, serializing concurrent booking mutations against the same room. A
// missing room is returned as a zero value, not an error.
func (repo *repositoryImpl) GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, id string) (model.Room, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.GetForUpdateTx")
	defer scope.End()

	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 FOR UPDATE", roomColumns, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var room model.Room

	err := sqltx.GetContext(ctx, &room, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return room, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return room, fmt.Errorf("failed to lock room row: %w", err)
	}

	return room, nil
}

// GetAllAvailableBetween returns rooms without an active booking overlapping
// the stay window. The cached status column plays no part here.
func (repo *repositoryImpl) GetAllAvailableBetween(ctx context.Context, checkIn, checkOut time.Time) ([]model.Room, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.GetAllAvailableBetween")
	defer scope.End()

	query := fmt.Sprintf(`SELECT %s FROM %s
		WHERE id NOT IN (
			SELECT room_id FROM bookings
			WHERE status IN ('confirmed', 'checked-in')
			AND check_in_date < $2 AND check_out_date > $1
		)
		ORDER BY room_number ASC`, roomColumns, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var rooms []model.Room

	err := repo.db.Read.SelectContext(ctx, &rooms, query, checkIn, checkOut)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get available rooms: %w", err)
	}

	return rooms, nil
}
