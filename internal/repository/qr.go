package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/qrkeep/qrkeep/internal/model"
)

// CreateQR inserts a new QR record.
func (r *Repository) CreateQR(ctx context.Context, qr *model.QRCode) error {
	query := `
		INSERT INTO qr_codes (id, user_id, title, content, type, color, bg_color, project, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		qr.ID,
		qr.UserID,
		qr.Title,
		qr.Content,
		qr.Type,
		qr.Color,
		qr.BgColor,
		qr.Project,
		qr.IsActive,
		qr.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create qr record: %w", err)
	}

	return nil
}

// ListQRs returns all records owned by userID, newest first.
func (r *Repository) ListQRs(ctx context.Context, userID string) ([]*model.QRCode, error) {
	query := `
		SELECT id, user_id, title, content, type, color, bg_color, project, is_active, created_at
		FROM qr_codes
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list qr records: %w", err)
	}
	defer rows.Close()

	return collectQRs(rows)
}

// RecentQRs returns the newest records owned by userID, bounded by limit.
// The caller is responsible for clamping limit.
func (r *Repository) RecentQRs(ctx context.Context, userID string, limit int) ([]*model.QRCode, error) {
	query := `
		SELECT id, user_id, title, content, type, color, bg_color, project, is_active, created_at
		FROM qr_codes
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent qr records: %w", err)
	}
	defer rows.Close()

	return collectQRs(rows)
}

// SummaryQRs computes dashboard aggregates over userID's records:
// total count, count within the trailing 7-day window, and the number
// of distinct non-blank project labels.
func (r *Repository) SummaryQRs(ctx context.Context, userID string) (*model.QRSummary, error) {
	countsQuery := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '7 days') AS last7days
		FROM qr_codes
		WHERE user_id = $1
	`

	var summary model.QRSummary
	err := r.pool.QueryRow(ctx, countsQuery, userID).Scan(&summary.Total, &summary.Last7)
	if err != nil {
		return nil, fmt.Errorf("failed to count qr records: %w", err)
	}

	projectsQuery := `
		SELECT COUNT(DISTINCT project)
		FROM qr_codes
		WHERE user_id = $1
		  AND project IS NOT NULL
		  AND TRIM(project) <> ''
	`

	err = r.pool.QueryRow(ctx, projectsQuery, userID).Scan(&summary.Projects)
	if err != nil {
		return nil, fmt.Errorf("failed to count qr projects: %w", err)
	}

	return &summary, nil
}

// DeleteQR removes a record iff it is owned by userID.
// Returns the number of rows affected: 0 means the id does not exist or
// belongs to someone else, and the two cases are indistinguishable.
func (r *Repository) DeleteQR(ctx context.Context, id, userID string) (int64, error) {
	query := `
		DELETE FROM qr_codes
		WHERE id = $1 AND user_id = $2
	`

	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete qr record: %w", err)
	}

	return tag.RowsAffected(), nil
}

// collectQRs scans all rows into QR records.
func collectQRs(rows pgx.Rows) ([]*model.QRCode, error) {
	records := make([]*model.QRCode, 0)

	for rows.Next() {
		var qr model.QRCode
		err := rows.Scan(
			&qr.ID,
			&qr.UserID,
			&qr.Title,
			&qr.Content,
			&qr.Type,
			&qr.Color,
			&qr.BgColor,
			&qr.Project,
			&qr.IsActive,
			&qr.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan qr record: %w", err)
		}
		records = append(records, &qr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate qr records: %w", err)
	}

	return records, nil
}
