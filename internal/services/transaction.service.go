package services

import (
	"context"
	"fmt"
	"villabook/internal/database"
	"villabook/pkg/logger"

	"gorm.io/gorm"
)

// TransactionService wraps multi-step writes in a single database
// transaction. The approval sequence (request status, reservation insert,
// calendar block, workorder creation) must commit or roll back as one unit.
type TransactionService struct {
	db  database.DB
	log logger.Logger
}

func NewTransactionService(db database.DB) *TransactionService {
	return &TransactionService{
		db:  db,
		log: logger.New("transactionService"),
	}
}

// Execute runs fn inside a transaction, committing on nil and rolling back
// on error. Panics are rolled back and converted to errors; a failed
// rollback after a panic crashes the service rather than risk partial state.
func (ts *TransactionService) Execute(
	ctx context.Context,
	fn func(context.Context, *gorm.DB) error,
) (err error) {
	log := ts.log.TraceFromContext(ctx).Function("Execute")

	tx := ts.db.SQLWithContext(ctx).Begin()
	if tx.Error != nil {
		return log.Err("failed to begin transaction", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			panicErr := fmt.Errorf("panic during transaction: %v", r)
			log.Er("panic during transaction, rolling back", panicErr)

			if rollbackErr := tx.Rollback().Error; rollbackErr != nil {
				log.Er("CRITICAL: failed to rollback after panic", rollbackErr, "panic", r)
				panic(fmt.Sprintf(
					"transaction rollback failed: %v (original panic: %v)",
					rollbackErr, r,
				))
			}

			err = panicErr
		}
	}()

	if err = fn(ctx, tx); err != nil {
		if rollbackErr := tx.Rollback().Error; rollbackErr != nil {
			return log.Error("transaction rollback failed",
				"rollbackError", rollbackErr, "originalError", err)
		}
		return err
	}

	if commitErr := tx.Commit().Error; commitErr != nil {
		return log.Err("failed to commit transaction", commitErr)
	}

	return nil
}
