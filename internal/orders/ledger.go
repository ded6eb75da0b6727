package orders

import (
	"context"
	"database/sql"
	"fmt"
)

// Conf wraps the database handle for the notification ledger.
type Conf struct {
	db *sql.DB
}

func NewConf(db *sql.DB) (*Conf, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	return &Conf{db: db}, nil
}

// MarkNotified records that notifications were dispatched for the given
// session. It is a check-and-set: the first call per session id returns true,
// every later call returns false. This is what makes order finalization
// idempotent across the polling and webhook paths.
func (c *Conf) MarkNotified(ctx context.Context, sessionID string) (bool, error) {
	const query = `
		INSERT INTO notified_orders (session_id)
		VALUES ($1)
		ON CONFLICT (session_id) DO NOTHING
	`
	res, err := c.db.ExecContext(ctx, query, sessionID)
	if err != nil {
		return false, fmt.Errorf("failed to mark order notified: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return rows > 0, nil
}
