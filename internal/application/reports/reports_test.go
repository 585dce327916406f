package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/farmacia-pos/internal/application/reports"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de solo lectura (los reportes no escriben)
// ──────────────────────────────────────────────────────────────────────────────

type fakeDrugRepo struct{ drugs []*entity.Drug }

func (r *fakeDrugRepo) Create(d *entity.Drug) error                    { return nil }
func (r *fakeDrugRepo) GetByID(id string) (*entity.Drug, error)        { return nil, nil }
func (r *fakeDrugRepo) GetBySKU(sku string) (*entity.Drug, error)      { return nil, nil }
func (r *fakeDrugRepo) GetForUpdate(id string) (*entity.Drug, error)   { return nil, nil }
func (r *fakeDrugRepo) Update(d *entity.Drug) error                    { return nil }
func (r *fakeDrugRepo) UpdateQuantity(id string, quantity int64) error { return nil }
func (r *fakeDrugRepo) List(limit, offset int) ([]*entity.Drug, error) { return nil, nil }
func (r *fakeDrugRepo) ListActive() ([]*entity.Drug, error)            { return r.drugs, nil }
func (r *fakeDrugRepo) Deactivate(id string) error                     { return nil }

type fakeMovementRepo struct{ byDrug map[string][]*entity.StockMovement }

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error             { return nil }
func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) { return nil, nil }
func (r *fakeMovementRepo) ListByDrugSince(drugID string, from time.Time) ([]*entity.StockMovement, error) {
	return r.byDrug[drugID], nil
}

func drug(id string, quantity, reorder int64, expiry *time.Time) *entity.Drug {
	return &entity.Drug{
		ID:           id,
		SKU:          "SKU-" + id,
		Name:         "Med " + id,
		Price:        decimal.NewFromInt(1000),
		Cost:         decimal.NewFromInt(400),
		Quantity:     quantity,
		ReorderLevel: reorder,
		ExpiryDate:   expiry,
		Active:       true,
	}
}

func datePtr(t time.Time) *time.Time { return &t }

// ──────────────────────────────────────────────────────────────────────────────
// Reporte de stock bajo
// ──────────────────────────────────────────────────────────────────────────────

func TestLowStockReport_SoloIncluyeBajoElUmbral(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	drugRepo := &fakeDrugRepo{drugs: []*entity.Drug{
		drug("agotado", 0, 20, nil),
		drug("bajo", 15, 20, nil),
		drug("cerca", 21, 20, nil),
		drug("sano", 80, 20, nil),
	}}
	movRepo := &fakeMovementRepo{byDrug: map[string][]*entity.StockMovement{}}

	uc := reports.NewLowStockUseCase(drugRepo, movRepo)
	out, err := uc.GenerateLowStockReport(context.Background(), now)
	require.NoError(t, err)

	require.Equal(t, 3, out.Total, "in_stock queda fuera del reporte")
	statuses := map[string]string{}
	for _, item := range out.Items {
		statuses[item.DrugID] = item.StockStatus
	}
	assert.Equal(t, inventory.StockStatusOut, statuses["agotado"])
	assert.Equal(t, inventory.StockStatusLow, statuses["bajo"])
	assert.Equal(t, inventory.StockStatusNearReorder, statuses["cerca"])
	assert.NotContains(t, statuses, "sano")
}

func TestLowStockReport_SugerenciaUsaConsumoDe90Dias(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	drugRepo := &fakeDrugRepo{drugs: []*entity.Drug{drug("d1", 5, 20, nil)}}
	// 900 unidades de salida en 90 días => 300/mes promedio
	movs := make([]*entity.StockMovement, 0, 9)
	for i := 0; i < 9; i++ {
		movs = append(movs, &entity.StockMovement{
			DrugID:    "d1",
			Type:      entity.MovementTypeOut,
			Quantity:  100,
			CreatedAt: now.AddDate(0, 0, -i*10),
		})
	}
	movRepo := &fakeMovementRepo{byDrug: map[string][]*entity.StockMovement{"d1": movs}}

	uc := reports.NewLowStockUseCase(drugRepo, movRepo)
	out, err := uc.GenerateLowStockReport(context.Background(), now)
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	item := out.Items[0]
	assert.Equal(t, int64(900), item.OutLast90Days)
	// leadTimeStock ceil(300/30*7)=70 + safetyStock ceil(20*0.2)=4 domina
	// sobre reorder*2 = 40 y el mínimo de 50
	assert.Equal(t, int64(74), item.SuggestedOrder)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reporte de vencimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestExpiryReport_ClasificaYOrdenaPorUrgencia(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	drugRepo := &fakeDrugRepo{drugs: []*entity.Drug{
		drug("vencido", 10, 5, datePtr(now.AddDate(0, 0, -3))),
		drug("pronto-a", 10, 5, datePtr(now.AddDate(0, 0, 25))),
		drug("pronto-b", 10, 5, datePtr(now.AddDate(0, 0, 5))),
		drug("valido", 10, 5, datePtr(now.AddDate(0, 6, 0))),
		drug("sin-fecha", 10, 5, nil),
	}}

	uc := reports.NewExpiryUseCase(drugRepo)
	out, err := uc.GenerateExpiryReport(context.Background(), now)
	require.NoError(t, err)

	require.Len(t, out.Expired, 1)
	assert.Equal(t, "vencido", out.Expired[0].DrugID)

	require.Len(t, out.ExpiringSoon, 2)
	assert.Equal(t, "pronto-b", out.ExpiringSoon[0].DrugID, "el más urgente primero")
	assert.Equal(t, "pronto-a", out.ExpiringSoon[1].DrugID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tablero
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_ContadoresYValorInventario(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	drugRepo := &fakeDrugRepo{drugs: []*entity.Drug{
		drug("agotado", 0, 20, nil),
		drug("bajo", 10, 20, datePtr(now.AddDate(0, 0, -1))), // bajo Y vencido
		drug("sano", 100, 20, datePtr(now.AddDate(0, 0, 10))),
	}}

	uc := reports.NewDashboardUseCase(drugRepo)
	out, err := uc.GenerateDashboard(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 3, out.TotalDrugs)
	assert.Equal(t, 1, out.OutOfStock)
	assert.Equal(t, 1, out.LowStock)
	assert.Equal(t, 1, out.Expired)
	assert.Equal(t, 1, out.ExpiringSoon)
	// (0 + 10 + 100) * 400
	assert.True(t, out.InventoryValue.Equal(decimal.NewFromInt(44000)),
		"valor de inventario = Σ cantidad * costo, fue %s", out.InventoryValue)
}
