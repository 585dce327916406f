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

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste la compra y sus líneas.
func (r *PurchaseRepo) Create(purchase *entity.Purchase, items []*entity.PurchaseItem) error {
	if purchase.ID == "" {
		purchase.ID = uuid.New().String()
	}
	query := `
		INSERT INTO purchases (id, number, supplier, reference, total, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		purchase.ID, purchase.Number, purchase.Supplier, purchase.Reference,
		purchase.Total, purchase.CreatedAt, purchase.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("purchase number already exists: %w", err)
		}
		return fmt.Errorf("insert purchase: %w", err)
	}
	for _, item := range items {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.PurchaseID = purchase.ID
		itemQuery := `
			INSERT INTO purchase_items (id, purchase_id, drug_id, quantity, unit_cost, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)`
		_, err := r.q.Exec(context.Background(), itemQuery,
			item.ID, item.PurchaseID, item.DrugID, item.Quantity, item.UnitCost, item.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert purchase item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la compra y sus líneas. Devuelve nil, nil, nil si no existe.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, []*entity.PurchaseItem, error) {
	query := `
		SELECT id, number, supplier, reference, total, created_at, created_by
		FROM purchases WHERE id = $1`
	var p entity.Purchase
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Number, &p.Supplier, &p.Reference, &p.Total, &p.CreatedAt, &p.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get purchase: %w", err)
	}

	itemsQuery := `
		SELECT id, purchase_id, drug_id, quantity, unit_cost, subtotal
		FROM purchase_items WHERE purchase_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), itemsQuery, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get purchase items: %w", err)
	}
	defer rows.Close()
	var items []*entity.PurchaseItem
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.DrugID, &it.Quantity,
			&it.UnitCost, &it.Subtotal); err != nil {
			return nil, nil, fmt.Errorf("scan purchase item: %w", err)
		}
		items = append(items, &it)
	}
	return &p, items, rows.Err()
}

// List lista compras paginadas, más recientes primero.
func (r *PurchaseRepo) List(limit, offset int) ([]*entity.Purchase, error) {
	query := `
		SELECT id, number, supplier, reference, total, created_at, created_by
		FROM purchases ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(&p.ID, &p.Number, &p.Supplier, &p.Reference,
			&p.Total, &p.CreatedAt, &p.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// NextNumber devuelve el siguiente consecutivo de compra (C-000001, ...).
func (r *PurchaseRepo) NextNumber() (string, error) {
	var n int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval('purchase_number_seq')`).Scan(&n)
	if err != nil {
		return "", fmt.Errorf("next purchase number: %w", err)
	}
	return fmt.Sprintf("C-%06d", n), nil
}
