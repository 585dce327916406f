package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

var _ repository.PatientRepository = (*PatientRepo)(nil)

const patientColumns = `id, document, name, phone, email, address, notes, active, created_at, updated_at`

// PatientRepo implementación de PatientRepository (usable con pool o tx).
type PatientRepo struct {
	q Querier
}

// NewPatientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPatientRepository(q Querier) *PatientRepo {
	return &PatientRepo{q: q}
}

// Create persiste un paciente nuevo.
func (r *PatientRepo) Create(patient *entity.Patient) error {
	if patient.ID == "" {
		patient.ID = uuid.New().String()
	}
	query := `
		INSERT INTO patients (id, document, name, phone, email, address, notes, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		patient.ID, patient.Document, patient.Name, patient.Phone, patient.Email,
		patient.Address, patient.Notes, patient.Active, patient.CreatedAt, patient.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: documento %s", domain.ErrDuplicate, patient.Document)
		}
		return fmt.Errorf("create patient: %w", err)
	}
	return nil
}

// GetByID obtiene un paciente por ID. Devuelve nil, nil si no existe.
func (r *PatientRepo) GetByID(id string) (*entity.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get patient")
}

// GetByDocument obtiene un paciente por documento. Devuelve nil, nil si no existe.
func (r *PatientRepo) GetByDocument(document string) (*entity.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE document = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, document), "get patient by document")
}

// Update actualiza los datos del paciente.
func (r *PatientRepo) Update(patient *entity.Patient) error {
	query := `
		UPDATE patients SET document = $2, name = $3, phone = $4, email = $5,
			address = $6, notes = $7, active = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		patient.ID, patient.Document, patient.Name, patient.Phone, patient.Email,
		patient.Address, patient.Notes, patient.Active, patient.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: documento %s", domain.ErrDuplicate, patient.Document)
		}
		return fmt.Errorf("update patient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: paciente %s", domain.ErrNotFound, patient.ID)
	}
	return nil
}

// List lista pacientes paginados por nombre.
func (r *PatientRepo) List(limit, offset int) ([]*entity.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Patient
	for rows.Next() {
		var p entity.Patient
		if err := rows.Scan(&p.ID, &p.Document, &p.Name, &p.Phone, &p.Email,
			&p.Address, &p.Notes, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *PatientRepo) scanOne(row pgx.Row, op string) (*entity.Patient, error) {
	var p entity.Patient
	err := row.Scan(&p.ID, &p.Document, &p.Name, &p.Phone, &p.Email,
		&p.Address, &p.Notes, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}
