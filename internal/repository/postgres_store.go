package repository

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rbnabilahpulunganadm/jumatberkah/internal/model"
)

const reservationsSchema = `
CREATE TABLE IF NOT EXISTS reservations (
	seq              BIGSERIAL PRIMARY KEY,
	created_at       TIMESTAMPTZ NOT NULL,
	reservation_id   TEXT NOT NULL,
	booker_name      TEXT NOT NULL,
	national_id      TEXT NOT NULL,
	phone            TEXT NOT NULL,
	address          TEXT NOT NULL,
	child_name       TEXT NOT NULL,
	child_birth_date TEXT NOT NULL,
	treatment_type   TEXT NOT NULL,
	arrival_slot     TEXT NOT NULL,
	complaint        TEXT NOT NULL DEFAULT '',
	assigned_staff   TEXT NOT NULL
)`

// PostgresStore keeps the intake table in PostgreSQL. This is the default
// production store.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a store on an open database handle.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) EnsureSchema() error {
	if _, err := s.db.Exec(reservationsSchema); err != nil {
		return fmt.Errorf("ensure reservations table: %w", err)
	}
	return nil
}

func (s *PostgresStore) AppendRow(res *model.Reservation) error {
	query := `INSERT INTO reservations
		(created_at, reservation_id, booker_name, national_id, phone, address,
		 child_name, child_birth_date, treatment_type, arrival_slot, complaint, assigned_staff)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := s.db.Exec(query,
		res.Timestamp, res.ReservationID, res.BookerName, res.NationalID,
		res.Phone, res.Address, res.ChildName, res.ChildBirthDate,
		res.TreatmentType, res.ArrivalSlot, res.Complaint, res.AssignedStaff,
	)
	if err != nil {
		return fmt.Errorf("append reservation row: %w", err)
	}
	return nil
}

func (s *PostgresStore) ScanRows() ([]model.Reservation, error) {
	rows := []model.Reservation{}
	err := s.db.Select(&rows,
		`SELECT created_at, reservation_id, booker_name, national_id, phone, address,
		        child_name, child_birth_date, treatment_type, arrival_slot, complaint, assigned_staff
		 FROM reservations ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("scan reservation rows: %w", err)
	}
	return rows, nil
}
