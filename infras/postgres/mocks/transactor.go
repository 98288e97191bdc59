package mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"atrium/infras/postgres"
)

type transactorImpl struct {
}

// WithTransaction implements postgres.Transactor. The callback receives a nil
// transaction so repository mocks can ignore it.
func (t *transactorImpl) WithTransaction(_ context.Context, fn func(tx *sqlx.Tx) error) error {
	return fn(nil)
}

func NewTransactor() postgres.Transactor {
	return &transactorImpl{}
}
