package sqlite

import (
	"context"
	"database/sql"
	e "pwreset/internal/core/domain/errors"
	uow "pwreset/internal/core/domain/unit_of_work"
	"pwreset/internal/core/domain/user"
)

type unitOfWorkContext struct {
	tx *sql.Tx
}

func (c *unitOfWorkContext) Commit(ctx context.Context) error {
	return c.tx.Commit()
}

// Rollback after a successful Commit is a no-op.
func (c *unitOfWorkContext) Rollback(ctx context.Context) error {
	err := c.tx.Rollback()
	if err == sql.ErrTxDone {
		return nil
	}
	return err
}

func (c *unitOfWorkContext) Users() user.UserRepository {
	return NewUserRepository(c.tx)
}

type UnitOfWork struct {
	db *sql.DB
}

func NewUnitOfWork(db *sql.DB) *UnitOfWork {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &UnitOfWork{db: db}
}

func (u *UnitOfWork) Begin(ctx context.Context) (uow.Context, error) {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &unitOfWorkContext{tx: tx}, nil
}
