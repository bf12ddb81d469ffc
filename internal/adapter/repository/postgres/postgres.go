package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/shortify/shortify/internal/entity"
)

const uniqueViolationErrCode = "23505"

func isUniqueViolationError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.SQLState() == uniqueViolationErrCode
}

type urlDB struct {
	ID        int64      `db:"id"`
	ShortCode string     `db:"short_code"`
	TargetURL string     `db:"target_url"`
	CreatedAt time.Time  `db:"created_at"`
	ExpiresAt *time.Time `db:"expires_at"`
}

func (u *urlDB) toEntity() *entity.URL {
	return &entity.URL{
		ID:        u.ID,
		ShortCode: u.ShortCode,
		TargetURL: u.TargetURL,
		CreatedAt: u.CreatedAt,
		ExpiresAt: u.ExpiresAt,
	}
}

type clickStatsDB struct {
	TotalClicks    int64      `db:"total_clicks"`
	UniqueVisitors int64      `db:"unique_visitors"`
	FirstClick     *time.Time `db:"first_click"`
	LastClick      *time.Time `db:"last_click"`
}

type dayClicksDB struct {
	Day    time.Time `db:"day"`
	Clicks int64     `db:"clicks"`
}

type URLRepository struct {
	db *sqlx.DB
}

func NewURLRepository(db *sqlx.DB) *URLRepository {
	return &URLRepository{db: db}
}

// Save inserts a new mapping. A unique violation on short_code is reported as
// entity.ErrShortCodeExists; this is what resolves the race between the
// existence check and the insert.
func (r *URLRepository) Save(ctx context.Context, shortCode, targetURL string, expiresAt *time.Time) (*entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.Save"
	const query = `INSERT INTO urls(short_code, target_url, expires_at) VALUES ($1, $2, $3) RETURNING *`

	var url urlDB

	if err := r.db.GetContext(ctx, &url, query, shortCode, targetURL, expiresAt); err != nil {
		if isUniqueViolationError(err) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrShortCodeExists)
		}

		return nil, fmt.Errorf("%s: failed to insert into urls table: %w", op, err)
	}

	return url.toEntity(), nil
}

func (r *URLRepository) RetrieveByShortCode(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.RetrieveByShortCode"
	const query = `SELECT * FROM urls WHERE short_code = $1`

	var url urlDB

	if err := r.db.GetContext(ctx, &url, query, shortCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get row from urls table: %w", op, err)
	}

	return url.toEntity(), nil
}

func (r *URLRepository) ExistsByShortCode(ctx context.Context, shortCode string) (bool, error) {
	const op = "adapter.repository.postgres.URLRepository.ExistsByShortCode"
	const query = `SELECT EXISTS(SELECT 1 FROM urls WHERE short_code = $1)`

	var exists bool

	if err := r.db.GetContext(ctx, &exists, query, shortCode); err != nil {
		return false, fmt.Errorf("%s: failed to check urls table row existence: %w", op, err)
	}

	return exists, nil
}

// SaveClickByCode appends a click event for the mapping with the given short
// code. The single INSERT..SELECT avoids a prior id lookup so the click log
// can also be written on the cache-hit path.
func (r *URLRepository) SaveClickByCode(ctx context.Context, shortCode, ipAddress string) error {
	const op = "adapter.repository.postgres.URLRepository.SaveClickByCode"
	const query = `INSERT INTO clicks(url_id, ip_address) SELECT id, $2 FROM urls WHERE short_code = $1`

	res, err := r.db.ExecContext(ctx, query, shortCode, ipAddress)
	if err != nil {
		return fmt.Errorf("%s: failed to insert into clicks table: %w", op, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get number of affected rows: %w", op, err)
	}

	if rowsAffected != 1 {
		return fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
	}

	return nil
}

// RetrieveClickStats aggregates the click log for one mapping. A nil since
// makes the window unbounded.
func (r *URLRepository) RetrieveClickStats(ctx context.Context, urlID int64, since *time.Time) (*entity.ClickStats, error) {
	const op = "adapter.repository.postgres.URLRepository.RetrieveClickStats"

	const summaryQuery = `
		SELECT COUNT(id) AS total_clicks,
		       COUNT(DISTINCT ip_address) AS unique_visitors,
		       MIN(created_at) AS first_click,
		       MAX(created_at) AS last_click
		FROM clicks
		WHERE url_id = $1 AND ($2::timestamptz IS NULL OR created_at >= $2)`

	const byDayQuery = `
		SELECT created_at::date AS day, COUNT(id) AS clicks
		FROM clicks
		WHERE url_id = $1 AND ($2::timestamptz IS NULL OR created_at >= $2)
		GROUP BY day
		ORDER BY day ASC`

	var summary clickStatsDB

	if err := r.db.GetContext(ctx, &summary, summaryQuery, urlID, since); err != nil {
		return nil, fmt.Errorf("%s: failed to aggregate clicks table: %w", op, err)
	}

	var days []dayClicksDB

	if err := r.db.SelectContext(ctx, &days, byDayQuery, urlID, since); err != nil {
		return nil, fmt.Errorf("%s: failed to get per-day clicks: %w", op, err)
	}

	stats := &entity.ClickStats{
		TotalClicks:    summary.TotalClicks,
		UniqueVisitors: summary.UniqueVisitors,
		FirstClick:     summary.FirstClick,
		LastClick:      summary.LastClick,
		ByDay:          make([]entity.DayClicks, 0, len(days)),
	}

	for _, d := range days {
		stats.ByDay = append(stats.ByDay, entity.DayClicks{Date: d.Day, Clicks: d.Clicks})
	}

	return stats, nil
}
