package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmarchal/game-price-comparator/internal/models"
)

// Run is one persisted comparison run.
type Run struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	GameCount int       `db:"game_count"`
}

// RunRepository stores comparison runs and their rows.
type RunRepository struct {
	db *DB
}

func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// InsertRun persists a run and all its rows in a single transaction and
// returns the generated run id.
func (r *RunRepository) InsertRun(ctx context.Context, rows []models.ComparisonRow) (uuid.UUID, error) {
	runID := uuid.New()

	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO comparison_runs (id, game_count) VALUES ($1, $2)`,
			runID, len(rows),
		)
		if err != nil {
			return fmt.Errorf("failed to insert run: %w", err)
		}

		for _, row := range rows {
			_, err := tx.Exec(ctx,
				`INSERT INTO comparison_rows
					(run_id, app_id, title, reference_price, quote_price, currency,
					 merchant, source_url, saving_absolute, saving_percent, checked_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
				runID,
				row.Game.AppID,
				row.Game.Title,
				row.Reference.Amount,
				row.Quote.Amount,
				row.Quote.Currency,
				row.Quote.Merchant,
				row.Quote.SourceURL,
				row.Savings.Absolute,
				row.Savings.Percent,
				row.CheckedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert row for app %d: %w", row.Game.AppID, err)
			}
		}

		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (r *RunRepository) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	rows, err := r.db.pool.Query(ctx,
		`SELECT id, created_at, game_count
		 FROM comparison_runs
		 ORDER BY created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		if err := rows.Scan(&run.ID, &run.CreatedAt, &run.GameCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// GetRun retrieves a single run, or nil when it does not exist.
func (r *RunRepository) GetRun(ctx context.Context, runID uuid.UUID) (*Run, error) {
	run := &Run{}
	err := r.db.pool.QueryRow(ctx,
		`SELECT id, created_at, game_count FROM comparison_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.CreatedAt, &run.GameCount)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return run, nil
}

// GetRunRows returns the rows of a run ordered best saving first, rows
// without a saving last.
func (r *RunRepository) GetRunRows(ctx context.Context, runID uuid.UUID) ([]models.ComparisonRow, error) {
	rows, err := r.db.pool.Query(ctx,
		`SELECT app_id, title, reference_price, quote_price, currency,
		        merchant, source_url, saving_absolute, saving_percent, checked_at
		 FROM comparison_rows
		 WHERE run_id = $1
		 ORDER BY saving_percent DESC NULLS LAST, id ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run rows: %w", err)
	}
	defer rows.Close()

	var result []models.ComparisonRow
	for rows.Next() {
		var row models.ComparisonRow
		err := rows.Scan(
			&row.Game.AppID,
			&row.Game.Title,
			&row.Reference.Amount,
			&row.Quote.Amount,
			&row.Quote.Currency,
			&row.Quote.Merchant,
			&row.Quote.SourceURL,
			&row.Savings.Absolute,
			&row.Savings.Percent,
			&row.CheckedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}
