package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/thea/internal/db"
	"github.com/alexanderramin/thea/internal/domain"
)

// SQLIncidentRepo implements IncidentRepo on SQLite or Postgres.
type SQLIncidentRepo struct {
	db db.DBTX
}

func NewSQLIncidentRepo(conn db.DBTX) *SQLIncidentRepo {
	return &SQLIncidentRepo{db: conn}
}

func (r *SQLIncidentRepo) Append(ctx context.Context, deviceID, date string, report *domain.IncidentReport) error {
	var category any
	if report.Category != nil {
		category = string(*report.Category)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO incidents (id, device_id, date, occurred_at, category, description)
		VALUES (?, ?, ?, ?, ?, ?)`,
		report.ID,
		deviceID,
		date,
		formatTimestamp(report.Timestamp),
		category,
		report.Description,
	)
	if err != nil {
		return fmt.Errorf("appending incident: %w", err)
	}
	return nil
}

func (r *SQLIncidentRepo) ListByDay(ctx context.Context, deviceID, date string) ([]domain.IncidentReport, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, occurred_at, category, description FROM incidents
		WHERE device_id = ? AND date = ?
		ORDER BY occurred_at, id`, deviceID, date)
	if err != nil {
		return nil, fmt.Errorf("listing incidents: %w", err)
	}
	defer rows.Close()

	out := []domain.IncidentReport{}
	for rows.Next() {
		var (
			rep        domain.IncidentReport
			occurredAt string
			category   sql.NullString
		)
		if err := rows.Scan(&rep.ID, &occurredAt, &category, &rep.Description); err != nil {
			return nil, fmt.Errorf("scanning incident: %w", err)
		}
		rep.Timestamp = parseTimestamp(occurredAt)
		if category.Valid {
			if inc, ok := domain.ParseIncident(category.String); ok {
				rep.Category = &inc
			}
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}
