package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la venta y sus líneas.
func (r *SaleRepo) Create(sale *entity.Sale, items []*entity.SaleItem) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sales (id, number, patient_id, subtotal, discount, total, status, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.Number, nullIfEmpty(sale.PatientID), sale.Subtotal, sale.Discount,
		sale.Total, sale.Status, sale.CreatedAt, sale.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("sale number already exists: %w", err)
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	for _, item := range items {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.SaleID = sale.ID
		itemQuery := `
			INSERT INTO sale_items (id, sale_id, drug_id, drug_name, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
		_, err := r.q.Exec(context.Background(), itemQuery,
			item.ID, item.SaleID, item.DrugID, item.DrugName, item.Quantity,
			item.UnitPrice, item.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la venta y sus líneas. Devuelve nil, nil, nil si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, []*entity.SaleItem, error) {
	query := `
		SELECT id, number, patient_id, subtotal, discount, total, status, created_at, created_by
		FROM sales WHERE id = $1`
	var s entity.Sale
	var patientID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Number, &patientID, &s.Subtotal, &s.Discount, &s.Total,
		&s.Status, &s.CreatedAt, &s.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get sale: %w", err)
	}
	s.PatientID = orEmpty(patientID)

	itemsQuery := `
		SELECT id, sale_id, drug_id, drug_name, quantity, unit_price, subtotal
		FROM sale_items WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), itemsQuery, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get sale items: %w", err)
	}
	defer rows.Close()
	var items []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.DrugID, &it.DrugName,
			&it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, &it)
	}
	return &s, items, rows.Err()
}

// List lista ventas paginadas, más recientes primero.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT id, number, patient_id, subtotal, discount, total, status, created_at, created_by
		FROM sales ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var patientID *string
		if err := rows.Scan(&s.ID, &s.Number, &patientID, &s.Subtotal, &s.Discount,
			&s.Total, &s.Status, &s.CreatedAt, &s.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		s.PatientID = orEmpty(patientID)
		list = append(list, &s)
	}
	return list, rows.Err()
}

// NextNumber devuelve el siguiente consecutivo de venta (V-000001, ...).
// Usa una secuencia de PostgreSQL para que el consecutivo sea seguro bajo concurrencia.
func (r *SaleRepo) NextNumber() (string, error) {
	var n int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval('sale_number_seq')`).Scan(&n)
	if err != nil {
		return "", fmt.Errorf("next sale number: %w", err)
	}
	return fmt.Sprintf("V-%06d", n), nil
}
