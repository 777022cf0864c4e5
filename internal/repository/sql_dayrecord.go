package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/thea/internal/db"
	"github.com/alexanderramin/thea/internal/domain"
)

// SQLDayRecordRepo implements DayRecordRepo on SQLite or Postgres.
type SQLDayRecordRepo struct {
	db db.DBTX
}

func NewSQLDayRecordRepo(conn db.DBTX) *SQLDayRecordRepo {
	return &SQLDayRecordRepo{db: conn}
}

func (r *SQLDayRecordRepo) Ensure(ctx context.Context, rec *domain.DayRecord) (bool, error) {
	profile, err := encodeJSON(toProfileColumn(rec.Profile))
	if err != nil {
		return false, err
	}
	meds, err := encodeMedications(rec.Medications)
	if err != nil {
		return false, err
	}

	query := `INSERT INTO day_records (device_id, date, profile, medications, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (device_id, date) DO NOTHING`
	res, err := r.db.ExecContext(ctx, query,
		rec.DeviceID,
		rec.Date,
		profile,
		meds,
		formatTimestamp(rec.CreatedAt),
	)
	if err != nil {
		return false, fmt.Errorf("ensuring day record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ensuring day record: %w", err)
	}
	return n > 0, nil
}

const dayRecordColumns = `device_id, date, profile, medications, created_at`

func (r *SQLDayRecordRepo) Get(ctx context.Context, deviceID, date string) (*domain.DayRecord, error) {
	query := `SELECT ` + dayRecordColumns + ` FROM day_records WHERE device_id = ? AND date = ?`
	rec, err := scanDayRecord(r.db.QueryRowContext(ctx, query, deviceID, date))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("day record %s/%s: %w", deviceID, date, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning day record: %w", err)
	}
	return rec, nil
}

func (r *SQLDayRecordRepo) ListByDevice(ctx context.Context, deviceID string) ([]*domain.DayRecord, error) {
	query := `SELECT ` + dayRecordColumns + ` FROM day_records WHERE device_id = ? ORDER BY date DESC`
	rows, err := r.db.QueryContext(ctx, query, deviceID)
	if err != nil {
		return nil, fmt.Errorf("listing day records: %w", err)
	}
	defer rows.Close()

	var out []*domain.DayRecord
	for rows.Next() {
		rec, err := scanDayRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning day record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDayRecord(row rowScanner) (*domain.DayRecord, error) {
	var (
		rec                   domain.DayRecord
		profileJSON, medsJSON string
		createdAt             string
	)
	if err := row.Scan(&rec.DeviceID, &rec.Date, &profileJSON, &medsJSON, &createdAt); err != nil {
		return nil, err
	}

	var profile profileColumn
	if err := decodeJSON(profileJSON, &profile); err != nil {
		return nil, err
	}
	rec.Profile = profile.toDomain()

	meds, err := decodeMedications(medsJSON)
	if err != nil {
		return nil, err
	}
	rec.Medications = meds
	rec.CreatedAt = parseTimestamp(createdAt)
	return &rec, nil
}
