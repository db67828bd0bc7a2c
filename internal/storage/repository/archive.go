package repository

import (
	"context"
	"fmt"

	"github.com/EgorCode/businessform-sub002/internal/models"
)

// SaveResult вставляет запись о завершённом подборе и возвращает её ID.
func (s *Storage) SaveResult(ctx context.Context, entry models.ArchiveEntry) (int, error) {
	const op = "storage.SaveResult"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO recommendation_archive (session_id, fiscal_year, form, regime,
			      gross, tax, contributions, net, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		entry.SessionID, entry.FiscalYear, entry.Form, entry.Regime,
		entry.Gross, entry.Tax, entry.Contributions, entry.Net, entry.CreatedAt).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// CountByForm возвращает распределение завершённых подборов по формам
// за указанный финансовый год.
func (s *Storage) CountByForm(ctx context.Context, fiscalYear int) (map[models.BusinessForm]int, error) {
	const op = "storage.CountByForm"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT form, COUNT(*) FROM recommendation_archive
			  WHERE fiscal_year = $1
			  GROUP BY form`
	rows, err := s.DB.QueryContext(ctx, query, fiscalYear)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[models.BusinessForm]int)
	for rows.Next() {
		var form models.BusinessForm
		var count int
		if err := rows.Scan(&form, &count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		counts[form] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return counts, nil
}
