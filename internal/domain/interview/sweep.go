package interview

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MarkNoShows flips scheduled interviews whose window ended before the
// cutoff to no_show. Returns the number of rows swept.
func MarkNoShows(ctx context.Context, db *pgxpool.Pool, cutoff time.Time) (int64, error) {
	cmd, err := db.Exec(ctx, `
    UPDATE interviews
    SET status = $1, updated_at = now()
    WHERE status = $2
      AND scheduled_date + scheduled_time + make_interval(mins => duration_minutes) < $3
  `, string(StatusNoShow), string(StatusScheduled), cutoff)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
