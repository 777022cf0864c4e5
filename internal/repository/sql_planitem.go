package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/thea/internal/db"
	"github.com/alexanderramin/thea/internal/domain"
)

// SQLPlanItemRepo implements PlanItemRepo on SQLite or Postgres.
type SQLPlanItemRepo struct {
	db db.DBTX
}

func NewSQLPlanItemRepo(conn db.DBTX) *SQLPlanItemRepo {
	return &SQLPlanItemRepo{db: conn}
}

func (r *SQLPlanItemRepo) ReplacePlan(ctx context.Context, deviceID, date string, items []domain.PlanItem) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM plan_items WHERE device_id = ? AND date = ?`, deviceID, date); err != nil {
		return fmt.Errorf("clearing plan: %w", err)
	}

	query := `INSERT INTO plan_items (id, device_id, date, position, type, title,
		description, time, category, tags, status, is_gentle)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i, item := range items {
		tags := item.Tags
		if tags == nil {
			tags = []string{}
		}
		tagsJSON, err := encodeJSON(tags)
		if err != nil {
			return err
		}
		_, err = r.db.ExecContext(ctx, query,
			item.ID,
			deviceID,
			date,
			i,
			string(item.Type),
			item.Title,
			item.Description,
			item.Time,
			item.Category,
			tagsJSON,
			string(item.Status),
			boolToInt(item.IsGentle),
		)
		if err != nil {
			return fmt.Errorf("inserting plan item %s: %w", item.ID, err)
		}
	}
	return nil
}

const planItemColumns = `id, type, title, description, time, category, tags, status, is_gentle`

func (r *SQLPlanItemRepo) ListByDay(ctx context.Context, deviceID, date string) ([]domain.PlanItem, error) {
	query := `SELECT ` + planItemColumns + ` FROM plan_items
		WHERE device_id = ? AND date = ?
		ORDER BY time, position`
	rows, err := r.db.QueryContext(ctx, query, deviceID, date)
	if err != nil {
		return nil, fmt.Errorf("listing plan items: %w", err)
	}
	defer rows.Close()

	out := []domain.PlanItem{}
	for rows.Next() {
		item, err := scanPlanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning plan item: %w", err)
		}
		out = append(out, *item)
	}
	return out, rows.Err()
}

func (r *SQLPlanItemRepo) GetByID(ctx context.Context, deviceID, date, itemID string) (*domain.PlanItem, error) {
	query := `SELECT ` + planItemColumns + ` FROM plan_items
		WHERE device_id = ? AND date = ? AND id = ?`
	item, err := scanPlanItem(r.db.QueryRowContext(ctx, query, deviceID, date, itemID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("plan item %s: %w", itemID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plan item: %w", err)
	}
	return item, nil
}

// SetStatusIfPending guards on the stored status, so of two racing
// transitions only the first one to write lands.
func (r *SQLPlanItemRepo) SetStatusIfPending(ctx context.Context, deviceID, date, itemID string, status domain.ItemStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE plan_items SET status = ?
		WHERE device_id = ? AND date = ? AND id = ? AND status = ?`,
		string(status), deviceID, date, itemID, string(domain.StatusPending))
	if err != nil {
		return false, fmt.Errorf("updating plan item status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("updating plan item status: %w", err)
	}
	return n == 1, nil
}

func scanPlanItem(row rowScanner) (*domain.PlanItem, error) {
	var (
		item             domain.PlanItem
		itemType, status string
		tagsJSON         string
		gentle           int
	)
	if err := row.Scan(
		&item.ID,
		&itemType,
		&item.Title,
		&item.Description,
		&item.Time,
		&item.Category,
		&tagsJSON,
		&status,
		&gentle,
	); err != nil {
		return nil, err
	}
	item.Type = domain.ItemType(itemType)
	item.Status = domain.ItemStatus(status)
	item.IsGentle = intToBool(gentle)
	item.Tags = []string{}
	if err := decodeJSON(tagsJSON, &item.Tags); err != nil {
		return nil, err
	}
	return &item, nil
}
