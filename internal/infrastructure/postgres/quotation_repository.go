package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

// QuotationRepo implementación de QuotationRepository (usable con pool o tx).
type QuotationRepo struct {
	q Querier
}

// NewQuotationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuotationRepository(q Querier) *QuotationRepo {
	return &QuotationRepo{q: q}
}

// Create persiste la cotización y sus líneas.
func (r *QuotationRepo) Create(quotation *entity.Quotation, items []*entity.QuotationItem) error {
	if quotation.ID == "" {
		quotation.ID = uuid.New().String()
	}
	query := `
		INSERT INTO quotations (id, number, patient_id, total, status, sale_id, valid_to, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		quotation.ID, quotation.Number, nullIfEmpty(quotation.PatientID), quotation.Total,
		quotation.Status, nullIfEmpty(quotation.SaleID), quotation.ValidTo,
		quotation.CreatedAt, quotation.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("quotation number already exists: %w", err)
		}
		return fmt.Errorf("insert quotation: %w", err)
	}
	for _, item := range items {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.QuotationID = quotation.ID
		itemQuery := `
			INSERT INTO quotation_items (id, quotation_id, drug_id, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)`
		_, err := r.q.Exec(context.Background(), itemQuery,
			item.ID, item.QuotationID, item.DrugID, item.Quantity, item.UnitPrice, item.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert quotation item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la cotización y sus líneas. Devuelve nil, nil, nil si no existe.
func (r *QuotationRepo) GetByID(id string) (*entity.Quotation, []*entity.QuotationItem, error) {
	query := `
		SELECT id, number, patient_id, total, status, sale_id, valid_to, created_at, created_by
		FROM quotations WHERE id = $1`
	var qt entity.Quotation
	var patientID, saleID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&qt.ID, &qt.Number, &patientID, &qt.Total, &qt.Status, &saleID,
		&qt.ValidTo, &qt.CreatedAt, &qt.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get quotation: %w", err)
	}
	qt.PatientID = orEmpty(patientID)
	qt.SaleID = orEmpty(saleID)

	itemsQuery := `
		SELECT id, quotation_id, drug_id, quantity, unit_price, subtotal
		FROM quotation_items WHERE quotation_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), itemsQuery, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get quotation items: %w", err)
	}
	defer rows.Close()
	var items []*entity.QuotationItem
	for rows.Next() {
		var it entity.QuotationItem
		if err := rows.Scan(&it.ID, &it.QuotationID, &it.DrugID, &it.Quantity,
			&it.UnitPrice, &it.Subtotal); err != nil {
			return nil, nil, fmt.Errorf("scan quotation item: %w", err)
		}
		items = append(items, &it)
	}
	return &qt, items, rows.Err()
}

// UpdateStatus marca la cotización y enlaza la venta generada (si aplica).
func (r *QuotationRepo) UpdateStatus(id, status, saleID string) error {
	query := `UPDATE quotations SET status = $2, sale_id = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status, nullIfEmpty(saleID), time.Now())
	if err != nil {
		return fmt.Errorf("update quotation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: cotización %s", domain.ErrNotFound, id)
	}
	return nil
}

// List lista cotizaciones paginadas, más recientes primero.
func (r *QuotationRepo) List(limit, offset int) ([]*entity.Quotation, error) {
	query := `
		SELECT id, number, patient_id, total, status, sale_id, valid_to, created_at, created_by
		FROM quotations ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quotation
	for rows.Next() {
		var qt entity.Quotation
		var patientID, saleID *string
		if err := rows.Scan(&qt.ID, &qt.Number, &patientID, &qt.Total, &qt.Status,
			&saleID, &qt.ValidTo, &qt.CreatedAt, &qt.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan quotation: %w", err)
		}
		qt.PatientID = orEmpty(patientID)
		qt.SaleID = orEmpty(saleID)
		list = append(list, &qt)
	}
	return list, rows.Err()
}

// NextNumber devuelve el siguiente consecutivo de cotización (Q-000001, ...).
func (r *QuotationRepo) NextNumber() (string, error) {
	var n int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval('quotation_number_seq')`).Scan(&n)
	if err != nil {
		return "", fmt.Errorf("next quotation number: %w", err)
	}
	return fmt.Sprintf("Q-%06d", n), nil
}
