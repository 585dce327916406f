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

var _ repository.DrugRepository = (*DrugRepo)(nil)

const drugColumns = `id, sku, name, generic_name, description, category, unit,
		price, cost, quantity, reorder_level, expiry_date, active, created_at, updated_at`

// DrugRepo implementación de DrugRepository sobre PostgreSQL (usable con pool o tx).
type DrugRepo struct {
	q Querier
}

// NewDrugRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDrugRepository(q Querier) *DrugRepo {
	return &DrugRepo{q: q}
}

// Create persiste un medicamento nuevo.
func (r *DrugRepo) Create(drug *entity.Drug) error {
	if drug.ID == "" {
		drug.ID = uuid.New().String()
	}
	query := `
		INSERT INTO drugs (id, sku, name, generic_name, description, category, unit,
			price, cost, quantity, reorder_level, expiry_date, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		drug.ID, drug.SKU, drug.Name, drug.GenericName, drug.Description, drug.Category, drug.Unit,
		drug.Price, drug.Cost, drug.Quantity, drug.ReorderLevel, drug.ExpiryDate, drug.Active,
		drug.CreatedAt, drug.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sku %s", domain.ErrDuplicate, drug.SKU)
		}
		return fmt.Errorf("create drug: %w", err)
	}
	return nil
}

// GetByID obtiene un medicamento por ID. Devuelve nil, nil si no existe.
func (r *DrugRepo) GetByID(id string) (*entity.Drug, error) {
	query := `SELECT ` + drugColumns + ` FROM drugs WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get drug")
}

// GetBySKU obtiene un medicamento por SKU. Devuelve nil, nil si no existe.
func (r *DrugRepo) GetBySKU(sku string) (*entity.Drug, error) {
	query := `SELECT ` + drugColumns + ` FROM drugs WHERE sku = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, sku), "get drug by sku")
}

// GetForUpdate obtiene el medicamento y bloquea la fila (SELECT FOR UPDATE).
// Usar solo dentro de una transacción: serializa los movimientos concurrentes por medicamento.
func (r *DrugRepo) GetForUpdate(id string) (*entity.Drug, error) {
	query := `SELECT ` + drugColumns + ` FROM drugs WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get drug for update")
}

// Update actualiza los datos del medicamento. No toca quantity: el saldo solo
// cambia vía UpdateQuantity dentro de la transacción del libro de movimientos.
func (r *DrugRepo) Update(drug *entity.Drug) error {
	query := `
		UPDATE drugs SET sku = $2, name = $3, generic_name = $4, description = $5,
			category = $6, unit = $7, price = $8, cost = $9, reorder_level = $10,
			expiry_date = $11, active = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		drug.ID, drug.SKU, drug.Name, drug.GenericName, drug.Description,
		drug.Category, drug.Unit, drug.Price, drug.Cost, drug.ReorderLevel,
		drug.ExpiryDate, drug.Active, drug.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sku %s", domain.ErrDuplicate, drug.SKU)
		}
		return fmt.Errorf("update drug: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: medicamento %s", domain.ErrNotFound, drug.ID)
	}
	return nil
}

// UpdateQuantity escribe el nuevo saldo del medicamento.
func (r *DrugRepo) UpdateQuantity(id string, quantity int64) error {
	query := `UPDATE drugs SET quantity = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, quantity, time.Now())
	if err != nil {
		return fmt.Errorf("update drug quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: medicamento %s", domain.ErrNotFound, id)
	}
	return nil
}

// List lista medicamentos paginados, más recientes primero.
func (r *DrugRepo) List(limit, offset int) ([]*entity.Drug, error) {
	query := `SELECT ` + drugColumns + ` FROM drugs ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list drugs: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// ListActive lista todos los medicamentos activos (para reportes).
func (r *DrugRepo) ListActive() ([]*entity.Drug, error) {
	query := `SELECT ` + drugColumns + ` FROM drugs WHERE active = true ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list active drugs: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// Deactivate marca el medicamento como inactivo (borrado lógico).
func (r *DrugRepo) Deactivate(id string) error {
	query := `UPDATE drugs SET active = false, updated_at = $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, time.Now())
	if err != nil {
		return fmt.Errorf("deactivate drug: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: medicamento %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *DrugRepo) scanOne(row pgx.Row, op string) (*entity.Drug, error) {
	var d entity.Drug
	err := row.Scan(
		&d.ID, &d.SKU, &d.Name, &d.GenericName, &d.Description, &d.Category, &d.Unit,
		&d.Price, &d.Cost, &d.Quantity, &d.ReorderLevel, &d.ExpiryDate, &d.Active,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &d, nil
}

func (r *DrugRepo) scanAll(rows pgx.Rows) ([]*entity.Drug, error) {
	var list []*entity.Drug
	for rows.Next() {
		var d entity.Drug
		if err := rows.Scan(
			&d.ID, &d.SKU, &d.Name, &d.GenericName, &d.Description, &d.Category, &d.Unit,
			&d.Price, &d.Cost, &d.Quantity, &d.ReorderLevel, &d.ExpiryDate, &d.Active,
			&d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan drug: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
