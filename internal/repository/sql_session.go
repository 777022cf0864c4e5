package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/thea/internal/db"
	"github.com/alexanderramin/thea/internal/domain"
)

// SQLSessionRepo implements SessionRepo on SQLite or Postgres.
type SQLSessionRepo struct {
	db db.DBTX
}

// NewSQLSessionRepo creates a new SQLSessionRepo.
func NewSQLSessionRepo(conn db.DBTX) *SQLSessionRepo {
	return &SQLSessionRepo{db: conn}
}

func (r *SQLSessionRepo) Upsert(ctx context.Context, s *domain.Session) error {
	illnesses, err := encodeJSON(s.Profile.IllnessNames())
	if err != nil {
		return err
	}
	meds, err := encodeMedications(s.Medications)
	if err != nil {
		return err
	}

	query := `INSERT INTO sessions (device_id, child_name, child_age, illness_types,
		child_energy, parent_energy, medications, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (device_id) DO UPDATE SET
			child_name = excluded.child_name,
			child_age = excluded.child_age,
			illness_types = excluded.illness_types,
			child_energy = excluded.child_energy,
			parent_energy = excluded.parent_energy,
			medications = excluded.medications,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		s.DeviceID,
		s.Profile.Name,
		s.Profile.Age,
		illnesses,
		string(s.Profile.ChildEnergyLevel),
		string(s.Profile.ParentEnergyLevel),
		meds,
		formatTimestamp(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting session: %w", err)
	}
	return nil
}

func (r *SQLSessionRepo) Get(ctx context.Context, deviceID string) (*domain.Session, error) {
	query := `SELECT device_id, child_name, child_age, illness_types, child_energy,
		parent_energy, medications, updated_at
		FROM sessions WHERE device_id = ?`

	var (
		s                    domain.Session
		illnessJSON, medJSON string
		childEnergy          string
		parentEnergy         string
		updatedAt            string
	)
	err := r.db.QueryRowContext(ctx, query, deviceID).Scan(
		&s.DeviceID,
		&s.Profile.Name,
		&s.Profile.Age,
		&illnessJSON,
		&childEnergy,
		&parentEnergy,
		&medJSON,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session %s: %w", deviceID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}

	var illnesses []string
	if err := decodeJSON(illnessJSON, &illnesses); err != nil {
		return nil, err
	}
	for _, name := range illnesses {
		s.Profile.IllnessTypes = append(s.Profile.IllnessTypes, domain.IllnessType(name))
	}
	s.Profile.ChildEnergyLevel = domain.ChildEnergy(childEnergy)
	s.Profile.ParentEnergyLevel = domain.ParentEnergy(parentEnergy)
	if s.Medications, err = decodeMedications(medJSON); err != nil {
		return nil, err
	}
	s.UpdatedAt = parseTimestamp(updatedAt)
	return &s, nil
}
