package repo

import (
	"context"
	"database/sql"
	"fmt"
)

// countRows counts the table's rows, optionally restricted to rows created
// at or after since (unix milliseconds). since <= 0 counts everything.
func countRows(ctx context.Context, db *sql.DB, table string, since int64) (int64, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
	var args []interface{}
	if since > 0 {
		query += " WHERE ctime >= $1"
		args = append(args, since)
	}
	var count int64
	if err := db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
