package postgresql

import (
	"context"

	"github.com/kita-hr/leave-backend-go/internal/pkg/database"
)

// GetQuerier returns the transaction bound to the context when one is
// active, otherwise the pool. Repositories resolve their querier through
// this so service-level transactions span multiple repositories.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := database.TxFromContext(ctx); ok {
		return tx
	}
	return db.Pool
}
